// Package slug derives store-safe identifiers used for duplicate detection.
package slug

import "strings"

// maxLen caps slug length; longer derivations are truncated.
const maxLen = 100

// Make builds the slug for a reminder from its title and text: the two are
// joined with a space, lowercased, every character outside [a-z0-9_ ] is
// dropped, each run of spaces collapses to a single hyphen, and the result
// is cut to 100 characters.
func Make(title, text string) string {
	combined := strings.ToLower(title + " " + text)

	var sb strings.Builder
	sb.Grow(len(combined))
	inSpace := false
	for _, r := range combined {
		switch {
		case r == ' ':
			if !inSpace {
				sb.WriteByte('-')
			}
			inSpace = true
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
			inSpace = false
		}
	}

	s := sb.String()
	if len(s) > maxLen {
		s = s[:maxLen]
	}
	return s
}
