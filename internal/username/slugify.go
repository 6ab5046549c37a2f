// Package username derives and checks profile usernames.
package username

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Slugify converts arbitrary text, typically a display name, into a
// username-like slug: NFKD decomposition, lowercasing, then every rune
// outside [a-z0-9] is dropped. The result may be empty.
func Slugify(s string) string {
	if s == "" {
		return ""
	}

	// Casers keep state between calls and must not be shared.
	s = cases.Lower(language.Und).String(norm.NFKD.String(s))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isSlugRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isSlugRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}
