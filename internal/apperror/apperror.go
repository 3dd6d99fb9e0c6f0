// Package apperror holds the domain-level errors the repositories return to
// the calculator. Nothing below the repositories leaks past this type.
//
// Every AppError carries two texts:
//   - Message: the descriptive, technical text. Error() returns it.
//   - Label:   a short text meant for a person looking at a screen.
//
// Which of the two gets displayed is the caller's choice.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("Validation Error")
	ErrConflict         = errors.New("conflict")
	ErrStorageExhausted = errors.New("storage exhausted")
	ErrInvalidDate      = errors.New("invalid date")
	ErrCannotSave       = errors.New("cannot save")
	ErrCannotLoad       = errors.New("cannot load")

	// Goal side
	ErrGoalSave   = errors.New("goal save failed")
	ErrGoalFetch  = errors.New("goal fetch failed")
	ErrGoalDelete = errors.New("goal delete failed")
)

type AppError struct {
	Err     error  // sentinel, matched with errors.Is
	Message string // descriptive message
	Label   string // short user-facing text
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// UserMessage returns Label, falling back to Message when no label is set.
func (e *AppError) UserMessage() string {
	if e.Label != "" {
		return e.Label
	}
	return e.Message
}

// shortID keeps the first 8 characters of an id for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Label:   message,
		Field:   field,
	}
}

// =========================================================================
// FOOD ERRORS
// =========================================================================

func FoodItemNotFound(id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("The food item you're looking for doesn't exist (ID: %s...)", shortID(id)),
		Label:   "Food item not found",
	}
}

func DeviceStorageExhausted() *AppError {
	return &AppError{
		Err:     ErrStorageExhausted,
		Message: "Your device is out of storage. Please free up space to continue tracking your meals.",
		Label:   "Storage full",
	}
}

func DuplicateFoodEntry(id string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("This food item has already been added (ID: %s...)", shortID(id)),
		Label:   "Item already exists",
	}
}

func InvalidDate() *AppError {
	return &AppError{
		Err:     ErrInvalidDate,
		Message: "Cannot process the selected date. Please try a different date.",
		Label:   "Invalid date",
	}
}

func CannotSaveFood(reason string) *AppError {
	return &AppError{
		Err:     ErrCannotSave,
		Message: "Unable to save food item: " + reason,
		Label:   "Cannot save item",
	}
}

func CannotLoadFoods(reason string) *AppError {
	return &AppError{
		Err:     ErrCannotLoad,
		Message: "Unable to load your meals: " + reason,
		Label:   "Cannot load meals",
	}
}

// =========================================================================
// GOAL ERRORS
// =========================================================================

func GoalSaveFailed(message string) *AppError {
	return &AppError{
		Err:     ErrGoalSave,
		Message: "Failed to save goal: " + message,
		Label:   "Unable to save calorie goal. Please try again.",
	}
}

func GoalFetchFailed(message string) *AppError {
	return &AppError{
		Err:     ErrGoalFetch,
		Message: "Failed to fetch goal: " + message,
		Label:   "Unable to load calorie goal. Please try again.",
	}
}

func GoalDeleteFailed(message string) *AppError {
	return &AppError{
		Err:     ErrGoalDelete,
		Message: "Failed to delete goal: " + message,
		Label:   "Unable to delete calorie goal. Please try again.",
	}
}

// InvalidTarget is a validation error; its label is the bare message.
func InvalidTarget(message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: "Invalid goal target: " + message,
		Label:   message,
		Field:   "target",
	}
}
