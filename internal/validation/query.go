package validation

import (
	"strings"
	"unicode"
)

const (
	// MaxSearchTerm caps the free-text ?q= parameter, in runes.
	MaxSearchTerm = 100
	// MaxFilterKey caps ?author= and ?category= values, in runes.
	MaxFilterKey = 32
)

// SearchTerm normalizes a free-text search parameter: surrounding space and
// control characters are removed and the result is clamped to MaxSearchTerm.
func SearchTerm(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, raw)
	return clamp(strings.Join(strings.Fields(cleaned), " "), MaxSearchTerm)
}

// FilterKey normalizes a tab or category selector. Unknown keys are passed
// through so callers can treat them as matching nothing.
func FilterKey(raw string) string {
	return clamp(strings.ToLower(strings.TrimSpace(raw)), MaxFilterKey)
}

func clamp(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n]))
}
