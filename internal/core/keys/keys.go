// Package keys turns free-text entity names into stable graph keys.
package keys

import "strings"

// Sanitize lower-cases and trims name, then replaces every rune outside
// [a-z0-9_-] with '_'. Names differing only in case or in disallowed
// characters collapse to the same key.
func Sanitize(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, name)
}
