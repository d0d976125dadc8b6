package browser

import (
	"errors"
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		input   string
		want    Kind
		wantErr bool
	}{
		{"chrome", KindChrome, false},
		{"Chrome", KindChrome, false},
		{"  edge ", KindEdge, false},
		{"firefox", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseKind(%q) succeeded, want error", tt.input)
				}
				if !errors.Is(err, ErrUnsupportedKind) {
					t.Errorf("error = %v, want ErrUnsupportedKind", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseKind(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewSession_InvalidKind(t *testing.T) {
	_, err := NewSession(Options{Kind: "safari"})
	if !errors.Is(err, ErrUnsupportedKind) {
		t.Errorf("NewSession error = %v, want ErrUnsupportedKind", err)
	}
}

func TestSession_CloseIdempotent(t *testing.T) {
	// A session that was never started must close cleanly, repeatedly.
	sess, err := NewSession(Options{Kind: KindChrome, Headless: true})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := sess.Close(); err != nil {
			t.Errorf("Close() #%d returned %v", i+1, err)
		}
	}
}

func TestLocate_DoesNotPanic(t *testing.T) {
	// Result depends on the host; just exercise both kinds.
	_ = Locate(KindChrome)
	_ = Locate(KindEdge)
}
