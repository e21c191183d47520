package sanitizer

import (
	"strings"
	"unicode"
)

func Trim(s string) string { return strings.TrimSpace(s) }

func ToLower(s string) string { return strings.ToLower(s) }

// MaxLength truncates s to at most maxLen runes.
func MaxLength(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}

// SingleLine collapses all whitespace, including newlines, to single spaces.
func SingleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeEmail trims and lowercases an address.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// TrimLines trims trailing whitespace on every line and surrounding blank lines.
func TrimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRightFunc(l, unicode.IsSpace)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
