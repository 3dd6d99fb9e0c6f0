package validation

import (
	"strconv"
	"strings"

	"github.com/sakif/calorie-calculator/internal/model"
)

// Validator parses free-text food lines. The zero value is ready to use.
type Validator struct{}

// NewValidator returns a Validator.
func NewValidator() Validator {
	return Validator{}
}

// Validate parses raw into a name and a calorie count.
//
// The last whitespace-separated token is the calorie count; everything before
// it, joined with single spaces, is the name. So "Apple 52 100" is
// "Apple 52" with 100 calories.
//
// Every failure is a *Error.
func (Validator) Validate(raw string) (model.ValidatedInput, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return model.ValidatedInput{}, ErrEmptyInput
	}

	// strings.Fields splits on runs of Unicode white space and drops
	// empty tokens.
	tokens := strings.Fields(trimmed)
	if len(tokens) < 2 {
		return model.ValidatedInput{}, ErrInvalidFormat
	}

	last := tokens[len(tokens)-1]
	calories, ok := parseCalories(last)
	if !ok {
		return model.ValidatedInput{}, ErrCaloriesNotNumeric
	}
	if !IsValidCalorieValue(calories) {
		return model.ValidatedInput{}, CaloriesOutOfRange(calories)
	}

	name := strings.TrimSpace(strings.Join(tokens[:len(tokens)-1], " "))
	if name == "" {
		return model.ValidatedInput{}, ErrMissingName
	}
	if !IsValidNameLength(name) {
		if nameLength(name) < MinNameLength {
			return model.ValidatedInput{}, ErrNameTooShort
		}
		return model.ValidatedInput{}, ErrNameTooLong
	}

	return model.ValidatedInput{
		Name:          name,
		Calories:      calories,
		OriginalInput: raw,
	}, nil
}

// parseCalories accepts an optional leading '-' followed by ASCII digits.
// A leading '+' and decimals are rejected; strconv.Atoi alone would accept
// "+5". Values that overflow int are rejected too.
func parseCalories(tok string) (int, bool) {
	digits := strings.TrimPrefix(tok, "-")
	if digits == "" {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false
	}
	return n, true
}
