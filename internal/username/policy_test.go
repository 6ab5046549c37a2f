package username

import (
	"errors"
	"strings"
	"testing"

	"questserver/internal/domain"
)

func TestValid(t *testing.T) {
	good := []string{"abc", "alice", "a1b2c3", "q" + strings.Repeat("x", 28)}
	for _, s := range good {
		if !Valid(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	bad := []string{"", "ab", "1abc", "Alice", "al_ice", "q" + strings.Repeat("x", 29), "émile"}
	for _, s := range bad {
		if Valid(s) {
			t.Fatalf("expected %q to be invalid", s)
		}
	}
}

func TestValidateReasons(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"ab", MsgTooShort},
		{"ab!", MsgUnallowedChars},
		{"9lives", MsgLeadingLetter},
		{strings.Repeat("a", MaxLen+1), msgTooLong},
	}
	for _, tc := range cases {
		err := Validate(tc.in)
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("Validate(%q): expected validation error, got %v", tc.in, err)
		}
		var verr *domain.ValidationError
		if !errors.As(err, &verr) || verr.Fields["username"] != tc.want {
			t.Fatalf("Validate(%q): got %v, want %q", tc.in, err, tc.want)
		}
	}
	if err := Validate("abc123"); err != nil {
		t.Fatalf("Validate(abc123): %v", err)
	}
}

func TestSlugOfDisplayNameIsNotAlwaysValid(t *testing.T) {
	if got := Slugify("2 Fast"); Valid(got) {
		t.Fatalf("expected slug %q to need review", got)
	}
	if got := Slugify("Zoë"); !Valid(got) {
		t.Fatalf("expected slug %q to be valid", got)
	}
}
