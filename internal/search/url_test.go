package search

import (
	"net/url"
	"strings"
	"testing"
)

func TestBuildSearchURL_Defaults(t *testing.T) {
	got, err := BuildSearchURL("", "minecraft pig")
	if err != nil {
		t.Fatalf("BuildSearchURL failed: %v", err)
	}

	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("Result is not a valid URL: %v", err)
	}

	if !strings.HasPrefix(got, DefaultBaseURL) {
		t.Errorf("URL %q does not start with default base", got)
	}

	q := u.Query()
	if q.Get("q") != "minecraft pig" {
		t.Errorf("q = %q, want %q", q.Get("q"), "minecraft pig")
	}
	if q.Get("source") != "lnms" {
		t.Errorf("source = %q, want lnms", q.Get("source"))
	}
	if q.Get("tbm") != "isch" {
		t.Errorf("tbm = %q, want isch", q.Get("tbm"))
	}
}

func TestBuildSearchURL_CustomBase(t *testing.T) {
	got, err := BuildSearchURL("https://www.google.com/search", "gophers")
	if err != nil {
		t.Fatalf("BuildSearchURL failed: %v", err)
	}
	if !strings.HasPrefix(got, "https://www.google.com/search?") {
		t.Errorf("URL %q does not use custom base", got)
	}
}

func TestBuildSearchURL_Errors(t *testing.T) {
	tests := []struct {
		name  string
		base  string
		query string
	}{
		{"empty query", "", ""},
		{"whitespace query", "", "   "},
		{"bad scheme", "ftp://example.com/search", "cats"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := BuildSearchURL(tt.base, tt.query); err == nil {
				t.Errorf("BuildSearchURL(%q, %q) succeeded, want error", tt.base, tt.query)
			}
		})
	}
}

func TestClickIfVisibleScript_EmbedsButtonID(t *testing.T) {
	script := clickIfVisibleScript("smb")
	if !strings.Contains(script, `getElementById("smb")`) {
		t.Errorf("Script does not target button id: %s", script)
	}
}
