package utils

import "strings"

// ParseInputString collapses surrounding whitespace on free-text input
// before it is validated or persisted.
func ParseInputString(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeUsername lowercases and trims a username so the synthetic
// login email derived from it is stable.
func NormalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
