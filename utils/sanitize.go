package utils

import "strings"

// dangerousFragments are stripped from free-text input before persistence.
var dangerousFragments = []string{
	"<script",
	"</script",
	"javascript:",
	"data:",
	"vbscript:",
}

// SanitizeInput removes script-injection fragments from free-text input and
// trims surrounding whitespace.
func SanitizeInput(text string) string {
	if text == "" {
		return text
	}

	lower := strings.ToLower(text)
	for _, fragment := range dangerousFragments {
		for strings.Contains(lower, fragment) {
			idx := strings.Index(lower, fragment)
			text = text[:idx] + text[idx+len(fragment):]
			lower = strings.ToLower(text)
		}
	}

	return strings.TrimSpace(text)
}
