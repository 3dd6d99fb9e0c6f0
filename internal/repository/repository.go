// Package repository sits between the calculator and the stores.
//
// A repository owns two jobs and nothing else:
//   - converting store records to model types and back
//   - turning every store failure into an *apperror.AppError
//
// Store error kinds never leave this package; only their text travels up.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sakif/calorie-calculator/internal/model"
	"github.com/sakif/calorie-calculator/internal/store"
)

// FoodRepository is what the calculator uses to read and write food entries.
type FoodRepository interface {
	FetchFoodItems(ctx context.Context, date time.Time) ([]model.FoodEntry, error)
	CreateFood(ctx context.Context, entry model.FoodEntry) error
	UpdateFood(ctx context.Context, entry model.FoodEntry) error
	DeleteFood(ctx context.Context, id string) error
}

// GoalRepository is what the calculator uses to read and write goals.
type GoalRepository interface {
	// FetchGoal returns the goal for date's day, or nil when none is set.
	FetchGoal(ctx context.Context, date time.Time) (*model.CalorieGoal, error)
	// SaveOrUpdateGoal keeps at most one goal per day: an existing goal is
	// overwritten in place, otherwise a new one is created.
	SaveOrUpdateGoal(ctx context.Context, target int, date time.Time) error
	DeleteGoal(ctx context.Context, id string) error
}

// reason extracts the text a repository error carries for an underlying
// failure.
func reason(err error) string {
	var se *store.Error
	if errors.As(err, &se) {
		return se.Reason()
	}
	return err.Error()
}
