package store

import "strings"

// slugify derives a URL-safe token from a display name: lowercase,
// runs of anything outside [a-z0-9] collapsed to a single hyphen,
// leading and trailing hyphens trimmed. Non-ASCII letters are dropped
// rather than kept, so the token is plain ASCII. Uniqueness is not
// enforced; slug lookups return the first match.
func slugify(name string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(name) {
		if ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') {
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
		} else {
			pending = true
		}
	}
	return b.String()
}
