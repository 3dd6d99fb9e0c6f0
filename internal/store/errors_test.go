package store

import (
	"errors"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	cause := errors.New("disk I/O error")

	tests := []struct {
		name        string
		err         *Error
		kind        error
		wantMessage string
		wantReason  string
	}{
		{"item not found", ItemNotFound("abc"), ErrItemNotFound, "item with id abc not found in database", "item with id abc not found in database"},
		{"duplicate", DuplicateItem("abc"), ErrDuplicateItem, "item with id abc already exists", "item with id abc already exists"},
		{"save failed", SaveFailed(cause), ErrSaveFailed, "save failed: disk I/O error", "disk I/O error"},
		{"fetch failed", FetchFailed(cause), ErrFetchFailed, "fetch failed: disk I/O error", "disk I/O error"},
		{"goal not found", GoalNotFound(), ErrGoalNotFound, "calorie goal not found", "calorie goal not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.kind) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.kind)
			}
			if got := tt.err.Error(); got != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", got, tt.wantMessage)
			}
			if got := tt.err.Reason(); got != tt.wantReason {
				t.Errorf("Reason() = %q, want %q", got, tt.wantReason)
			}
		})
	}
}

func TestError_CauseIsNotUnwrapped(t *testing.T) {
	cause := errors.New("driver specific")
	err := SaveFailed(cause)

	if errors.Is(err, cause) {
		t.Error("store error exposes its engine cause through errors.Is")
	}
}
