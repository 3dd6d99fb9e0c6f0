// Package model defines the data structures used throughout the application.
// These are the domain-facing shapes: the persistence records live in the
// store package and are converted to these types by the repositories.
package model

import (
	"time"

	"github.com/rs/xid"
)

// FoodEntry is one logged food item for a day.
//
// ID is generated once at creation (xid: 20 chars, URL-safe, time-sortable)
// and never changes. Name, Calories, Image and Timestamp may be edited.
// Image is nil when the entry has no photo.
type FoodEntry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Calories  int       `json:"calories"`
	Image     []byte    `json:"image,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewFoodEntry builds an entry with a fresh ID logged at the given instant.
func NewFoodEntry(name string, calories int, at time.Time) FoodEntry {
	return FoodEntry{
		ID:        xid.New().String(),
		Name:      name,
		Calories:  calories,
		Timestamp: at,
	}
}

// ValidatedInput is the result of parsing one free-text line such as
// "Grilled Chicken 165". It is never persisted.
type ValidatedInput struct {
	Name          string `json:"name"`
	Calories      int    `json:"calories"`
	OriginalInput string `json:"originalInput"` // raw text, unmodified
}
