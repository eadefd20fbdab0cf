package quiz

import "strings"

// Normalize trims surrounding whitespace and folds case.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Matches reports whether input is the answer under Normalize.
// Only exact matches count.
func Matches(input, answer string) bool {
	return Normalize(input) == Normalize(answer)
}
