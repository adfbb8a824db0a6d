package discord

import "unicode/utf8"

const (
	nameEnforcementChar = "-"
	minSenderNameLength = 2
	maxSenderNameLength = 32
)

// EnforceSenderName makes the given name fit Discord's username length requirements.
// Names shorter than two characters are padded on both sides, and names longer than
// 32 characters are truncated. Lengths are counted in characters, not bytes.
func EnforceSenderName(name string) string {
	length := utf8.RuneCountInString(name)
	if length < minSenderNameLength {
		return nameEnforcementChar + name + nameEnforcementChar
	}

	if length > maxSenderNameLength {
		return string([]rune(name)[:maxSenderNameLength])
	}

	return name
}
