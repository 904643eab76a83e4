// Package phone normalizes raw phone strings from recipient sheets into
// Russian 11-digit numbers and derives WhatsApp chat ids from them.
package phone

import "strings"

const (
	numberLength = 11
	chatIDSuffix = "@c.us"
)

// Normalize strips every non-digit character, replaces a leading 8 with 7
// and accepts the result only when it is exactly 11 digits long.
func Normalize(raw string) (string, bool) {
	digits := stripNonDigits(raw)
	if strings.HasPrefix(digits, "8") {
		digits = "7" + digits[1:]
	}
	if len(digits) != numberLength {
		return "", false
	}
	return digits, true
}

// ChatID builds the messaging-network address for a number. No validation
// happens here: the caller decides what it feeds in.
func ChatID(number string) string {
	return number + chatIDSuffix
}

func stripNonDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
