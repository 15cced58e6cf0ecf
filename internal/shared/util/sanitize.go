package util

import "strings"

// FileToken reduces a free-form value to a filesystem-safe token by
// replacing every non-alphanumeric rune with an underscore.
func FileToken(value string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, value)
}
