package validation

import "fmt"

// Kind identifies what went wrong while parsing a food line.
type Kind string

const (
	KindEmptyInput         Kind = "empty_input"
	KindInvalidFormat      Kind = "invalid_format"
	KindMissingName        Kind = "missing_name"
	KindMissingCalories    Kind = "missing_calories"
	KindCaloriesNotNumeric Kind = "calories_not_numeric"
	KindCaloriesOutOfRange Kind = "calories_out_of_range"
	KindNameTooShort       Kind = "name_too_short"
	KindNameTooLong        Kind = "name_too_long"
)

// Lang selects the language of user-facing messages.
type Lang string

const (
	LangEnglish Lang = "en"
	LangRussian Lang = "ru"
)

// Error is returned by Validator.Validate. Value is only meaningful for
// KindCaloriesOutOfRange, where it holds the rejected number.
//
// Match a kind with errors.Is against the ErrXxx sentinels below; use
// errors.As to read Value.
type Error struct {
	Kind  Kind
	Value int
}

// Sentinels for errors.Is. ErrCaloriesOutOfRange matches any value.
var (
	ErrEmptyInput         = &Error{Kind: KindEmptyInput}
	ErrInvalidFormat      = &Error{Kind: KindInvalidFormat}
	ErrMissingName        = &Error{Kind: KindMissingName}
	ErrMissingCalories    = &Error{Kind: KindMissingCalories}
	ErrCaloriesNotNumeric = &Error{Kind: KindCaloriesNotNumeric}
	ErrCaloriesOutOfRange = &Error{Kind: KindCaloriesOutOfRange}
	ErrNameTooShort       = &Error{Kind: KindNameTooShort}
	ErrNameTooLong        = &Error{Kind: KindNameTooLong}
)

// CaloriesOutOfRange builds the error for a parsed value outside the limits.
func CaloriesOutOfRange(value int) *Error {
	return &Error{Kind: KindCaloriesOutOfRange, Value: value}
}

func (e *Error) Error() string {
	return e.Localize(LangEnglish)
}

// Is matches on Kind only, so a sentinel matches every Value.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Localize returns the message shown to the user in the given language.
// Unknown languages fall back to English.
func (e *Error) Localize(lang Lang) string {
	if lang == LangRussian {
		return e.russian()
	}
	return e.english()
}

func (e *Error) english() string {
	switch e.Kind {
	case KindEmptyInput:
		return "Enter food name and calories"
	case KindInvalidFormat:
		return "Format: 'Food Name 100' (calories at the end)"
	case KindMissingName:
		return "Food name is required"
	case KindMissingCalories:
		return "Calories are required"
	case KindCaloriesNotNumeric:
		return "Calories must be a number"
	case KindCaloriesOutOfRange:
		return fmt.Sprintf("Calories %d out of range (%d-%s)", e.Value, MinCalories, "10,000")
	case KindNameTooShort:
		return "Food name is too short"
	case KindNameTooLong:
		return fmt.Sprintf("Food name is too long (max %d characters)", MaxNameLength)
	}
	return string(e.Kind)
}

func (e *Error) russian() string {
	switch e.Kind {
	case KindEmptyInput:
		return "Введите название еды и калории"
	case KindInvalidFormat:
		return "Формат: 'Название еды 100' (калории в конце)"
	case KindMissingName:
		return "Требуется название еды"
	case KindMissingCalories:
		return "Требуются калории"
	case KindCaloriesNotNumeric:
		return "Калории должны быть числом"
	case KindCaloriesOutOfRange:
		return fmt.Sprintf("Калории %d вне диапазона (%d-%s)", e.Value, MinCalories, "10 000")
	case KindNameTooShort:
		return "Название еды слишком короткое"
	case KindNameTooLong:
		return fmt.Sprintf("Название еды слишком длинное (макс %d символов)", MaxNameLength)
	}
	return string(e.Kind)
}
