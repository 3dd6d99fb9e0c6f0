// Package validation parses and checks user-entered food lines.
//
// The rules in this file are pure range checks. The Validator in
// validator.go uses them to turn a line like "Apple 52" into a
// model.ValidatedInput, or a typed *Error describing what is wrong.
package validation

import "unicode/utf8"

// Calorie and name limits for a single food entry.
// Goal targets have their own limits in the repository package.
const (
	MinCalories = 1
	MaxCalories = 10_000

	MinNameLength = 1
	MaxNameLength = 100
)

// IsValidCalorieValue reports whether n is an acceptable calorie count.
func IsValidCalorieValue(n int) bool {
	return n >= MinCalories && n <= MaxCalories
}

// IsValidNameLength reports whether s has an acceptable length, counted in
// Unicode code points. The caller trims s first.
func IsValidNameLength(s string) bool {
	n := nameLength(s)
	return n >= MinNameLength && n <= MaxNameLength
}

func nameLength(s string) int {
	return utf8.RuneCountInString(s)
}
