// Package store defines the low-level persistence contracts for food entries
// and calorie goals, the persistence-facing record shapes, and the store
// error taxonomy.
//
// Implementations live in sub-packages (sqlite, memory). They must never let
// a driver error escape: every failure is returned as a *Error.
package store

import (
	"context"
	"time"
)

// FoodRecord is the persisted shape of a food entry.
type FoodRecord struct {
	ID        string
	Name      string
	Calories  int
	Image     []byte // nil when there is no image
	Timestamp time.Time
}

// GoalRecord is the persisted shape of a calorie goal.
type GoalRecord struct {
	ID          string
	DailyTarget int
	Date        time.Time
}

// FoodStore performs CRUD on food records. All reads are scoped to one
// calendar day.
type FoodStore interface {
	// FetchItems returns the records logged on date's calendar day, newest
	// first.
	FetchItems(ctx context.Context, date time.Time) ([]FoodRecord, error)
	Create(ctx context.Context, rec FoodRecord) error
	// Update overwrites name, calories, image and timestamp of an existing
	// record.
	Update(ctx context.Context, rec FoodRecord) error
	Delete(ctx context.Context, id string) error
}

// GoalStore performs CRUD on goal records. The store does not enforce one
// goal per day; the goal repository does.
type GoalStore interface {
	// FetchGoal returns the goal on date's calendar day, or nil when there is
	// none.
	FetchGoal(ctx context.Context, date time.Time) (*GoalRecord, error)
	SaveGoal(ctx context.Context, rec GoalRecord) error
	UpdateGoal(ctx context.Context, rec GoalRecord) error
	DeleteGoal(ctx context.Context, id string) error
}
