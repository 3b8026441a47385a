package config

import "strings"

const (
	maskVisible = 8
	maskRune    = "*"
)

// MaskCredential hides all but the first 8 characters of a credential,
// followed by a fixed 8-character marker. Values of 8 characters or fewer
// are redacted character for character.
func MaskCredential(value string) string {
	runes := []rune(value)
	if len(runes) <= maskVisible {
		return strings.Repeat(maskRune, len(runes))
	}
	return string(runes[:maskVisible]) + strings.Repeat(maskRune, maskVisible)
}
