// Package normalize cleans raw form field labels into matchable text.
package normalize

import (
	"strings"
	"unicode"
)

// CleanLabel strips every character that is not an ASCII letter or
// whitespace, collapses whitespace runs to a single space, and trims. Field
// names like "item_meta[21]" or "wpcf7-recaptcha-response" reduce to their
// alphabetic core before fuzzy matching.
func CleanLabel(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
