package username

import (
	"regexp"

	"questserver/internal/domain"
)

const (
	MinLen = 3
	MaxLen = 29

	msgTooLong = "Username too long"
)

var policyPattern = regexp.MustCompile(`^[a-z][a-z0-9]{2,28}$`)

// Valid reports whether s may be stored as a profile username: a lowercase
// letter followed by lowercase letters or digits, 3 to 29 characters.
func Valid(s string) bool {
	return policyPattern.MatchString(s)
}

// Validate is Valid with a field-level reason.
func Validate(s string) error {
	if Valid(s) {
		return nil
	}
	msg := msgTooLong
	if len(s) <= MaxLen {
		msg = evaluate(s).Feedback.Text
	}
	return domain.NewValidationError(map[string]string{"username": msg})
}
