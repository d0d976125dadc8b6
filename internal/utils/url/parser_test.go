package urlutil

import "testing"

func TestValidateURL(t *testing.T) {
	valid := []string{
		"http://example.com",
		"https://example.com/images/cat.jpg",
		"https://example.com/a.png?w=300",
	}
	for _, u := range valid {
		if err := ValidateURL(u); err != nil {
			t.Errorf("ValidateURL(%q) = %v, want nil", u, err)
		}
	}

	invalid := []string{"ftp://example.com/a.jpg", "//example.com/a.jpg", "http:///", "not a url at all\x7f"}
	for _, u := range invalid {
		if err := ValidateURL(u); err == nil {
			t.Errorf("ValidateURL(%q) = nil, want error", u)
		}
	}
}
