package store

import (
	"errors"
	"fmt"
)

// Store error kinds. Match with errors.Is.
var (
	ErrItemNotFound     = errors.New("item not found")
	ErrStorageFull      = errors.New("storage full")
	ErrDuplicateItem    = errors.New("duplicate item")
	ErrSaveFailed       = errors.New("save failed")
	ErrFetchFailed      = errors.New("fetch failed")
	ErrUpdateFailed     = errors.New("update failed")
	ErrDeleteFailed     = errors.New("delete failed")
	ErrInvalidDateRange = errors.New("invalid date range")
	ErrGoalNotFound     = errors.New("goal not found")
)

// Error is the only error type a store returns.
//
// Kind is one of the sentinels above and is what Unwrap returns. ID is set
// for ItemNotFound and DuplicateItem. Cause holds the engine error for the
// *Failed kinds; it is kept for logging but intentionally not unwrapped, so
// driver error types stay behind the store boundary.
type Error struct {
	Kind  error
	ID    string
	Cause error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrItemNotFound:
		return fmt.Sprintf("item with id %s not found in database", e.ID)
	case ErrStorageFull:
		return "device storage is full, please free up space"
	case ErrDuplicateItem:
		return fmt.Sprintf("item with id %s already exists", e.ID)
	case ErrInvalidDateRange:
		return "failed to calculate date range, invalid date provided"
	case ErrGoalNotFound:
		return "calorie goal not found"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Cause)
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Reason is the cause's message, or the kind's message when there is no
// cause. Repositories carry this text upward instead of the cause itself.
func (e *Error) Reason() string {
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Error()
}

func ItemNotFound(id string) *Error { return &Error{Kind: ErrItemNotFound, ID: id} }
func DuplicateItem(id string) *Error { return &Error{Kind: ErrDuplicateItem, ID: id} }
func StorageFull() *Error { return &Error{Kind: ErrStorageFull} }
func InvalidDateRange() *Error { return &Error{Kind: ErrInvalidDateRange} }
func GoalNotFound() *Error { return &Error{Kind: ErrGoalNotFound} }
func SaveFailed(cause error) *Error { return &Error{Kind: ErrSaveFailed, Cause: cause} }
func FetchFailed(cause error) *Error { return &Error{Kind: ErrFetchFailed, Cause: cause} }
func UpdateFailed(cause error) *Error { return &Error{Kind: ErrUpdateFailed, Cause: cause} }
func DeleteFailed(cause error) *Error { return &Error{Kind: ErrDeleteFailed, Cause: cause} }
