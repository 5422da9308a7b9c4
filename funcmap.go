package promptman

import (
	"strings"
	"text/template"
	"unicode/utf8"
)

// defaultFuncMap returns the template.FuncMap available in prompt templates.
func defaultFuncMap() template.FuncMap {
	return template.FuncMap{
		"truncate_chars": truncateChars,
		"join":           strings.Join,
	}
}

// truncateChars truncates text to at most maxChars runes.
// Uses RuneCountInString for early exit to avoid allocating []rune when no truncation is needed.
func truncateChars(text string, maxChars int) string {
	if maxChars <= 0 {
		return ""
	}
	if utf8.RuneCountInString(text) <= maxChars {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxChars])
}
