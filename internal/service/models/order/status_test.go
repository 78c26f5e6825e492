package order

import (
	"errors"
	"testing"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"PLACED", "PROCURING", "ON_THE_WAY", "DELIVERED"} {
		got, err := ParseStatus(s)
		if err != nil {
			t.Errorf("ParseStatus(%q): unexpected error: %v", s, err)
			continue
		}
		if got.String() != s {
			t.Errorf("ParseStatus(%q) = %q", s, got)
		}
	}

	for _, s := range []string{"", "placed", "CANCELLED", "DELIVERED "} {
		if _, err := ParseStatus(s); !errors.Is(err, ErrUnknownStatus) {
			t.Errorf("ParseStatus(%q): expected ErrUnknownStatus, got %v", s, err)
		}
	}
}
