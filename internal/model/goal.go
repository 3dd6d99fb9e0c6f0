package model

import (
	"time"

	"github.com/rs/xid"
)

// CalorieGoal is the daily calorie ceiling for one calendar day.
//
// Only the calendar day of Date matters for lookups; the time of day is kept
// as whatever instant the goal was last set at. There is at most one goal
// per day.
type CalorieGoal struct {
	ID          string    `json:"id"`
	DailyTarget int       `json:"dailyTarget"`
	Date        time.Time `json:"date"`
}

// NewCalorieGoal builds a goal with a fresh ID.
func NewCalorieGoal(target int, date time.Time) CalorieGoal {
	return CalorieGoal{
		ID:          xid.New().String(),
		DailyTarget: target,
		Date:        date,
	}
}
