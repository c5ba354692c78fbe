package model

import (
	"regexp"
	"strings"
)

var labelSeparators = regexp.MustCompile(`[_\-\s]+`)

// DefaultLabeler converts a field name or validation kind into a
// human-friendly label, splitting on separators and camelCase boundaries.
func DefaultLabeler(name string) string {
	if name == "" {
		return ""
	}

	var parts []string
	for _, chunk := range labelSeparators.Split(name, -1) {
		if chunk == "" {
			continue
		}
		for _, word := range strings.Fields(breakCamel(chunk)) {
			parts = append(parts, titleWord(word))
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func breakCamel(word string) string {
	var out strings.Builder
	runes := []rune(word)
	for i, r := range runes {
		if i > 0 && camelBoundary(runes[i-1], r) {
			out.WriteRune(' ')
		}
		out.WriteRune(r)
	}
	return out.String()
}

func camelBoundary(prev, cur rune) bool {
	switch {
	case isLower(prev) && isUpper(cur):
		return true
	case isLower(prev) && isDigit(cur):
		return true
	case isDigit(prev) && isLetter(cur):
		return true
	}
	return false
}

func isUpper(r rune) bool  { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool  { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return isUpper(r) || isLower(r) }

func titleWord(word string) string {
	if word == "" {
		return ""
	}
	lower := strings.ToLower(word)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
