package modex

import (
	"fmt"
	"strings"
)

// Sanitize normalizes arbitrary input into a string that is safe to embed in
// JSON: typographic quotes are replaced with their plain ASCII forms,
// newlines, carriage returns and tabs each become a single space, and every
// remaining character outside the printable ASCII range (0x20-0x7E) is
// dropped. Non-string input is coerced to its display form first; nil yields
// the empty string.
//
// Sanitize never fails and is idempotent: Sanitize(Sanitize(x)) == Sanitize(x).
func Sanitize(v any) string {
	if v == nil {
		return ""
	}

	s, ok := v.(string)
	if !ok {
		s = fmt.Sprint(v)
	}
	if s == "" {
		return ""
	}

	var sb strings.Builder
	sb.Grow(len(s))

	for _, r := range s {
		switch r {
		case '\n', '\r', '\t':
			// Replaced, not removed, to avoid joining adjacent words.
			sb.WriteRune(' ')
		case '‘', '’', '‚', '′':
			sb.WriteRune('\'')
		case '“', '”', '„', '″':
			sb.WriteRune('"')
		default:
			if r >= 0x20 && r <= 0x7E {
				sb.WriteRune(r)
			}
		}
	}

	return sb.String()
}
