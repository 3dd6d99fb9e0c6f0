package service

import (
	"fmt"
	"time"

	"github.com/sakif/calorie-calculator/internal/model"
	"github.com/sakif/calorie-calculator/internal/validation"
)

// State is a snapshot of everything the calculator shows for one day.
// Callers get a copy; changing it does not affect the calculator.
type State struct {
	Day          time.Time          `json:"day"`
	Entries      []model.FoodEntry  `json:"entries"`
	Goal         *model.CalorieGoal `json:"goal,omitempty"`
	IsLoading    bool               `json:"isLoading"`
	ErrorMessage string             `json:"errorMessage,omitempty"`
	ShowError    bool               `json:"showError"`
	Pending      *PendingDecision   `json:"pending,omitempty"`
}

func (s State) clone() State {
	s.Entries = append([]model.FoodEntry(nil), s.Entries...)
	if s.Entries == nil {
		s.Entries = []model.FoodEntry{}
	}
	if s.Goal != nil {
		g := *s.Goal
		s.Goal = &g
	}
	if s.Pending != nil {
		p := *s.Pending
		s.Pending = &p
	}
	return s
}

// TotalCalories sums the calories of every entry.
func (s State) TotalCalories() int {
	total := 0
	for _, e := range s.Entries {
		total += e.Calories
	}
	return total
}

// IsEmpty is true when there are no entries and nothing is loading.
func (s State) IsEmpty() bool {
	return len(s.Entries) == 0 && !s.IsLoading
}

func (s State) HasGoal() bool {
	return s.Goal != nil
}

// GoalProgress is total/target capped at 1.0, or 0 without a positive goal.
func (s State) GoalProgress() float64 {
	if s.Goal == nil || s.Goal.DailyTarget <= 0 {
		return 0
	}
	return min(float64(s.TotalCalories())/float64(s.Goal.DailyTarget), 1.0)
}

// RemainingCalories is target-total floored at 0, or 0 without a goal.
func (s State) RemainingCalories() int {
	if s.Goal == nil {
		return 0
	}
	return max(s.Goal.DailyTarget-s.TotalCalories(), 0)
}

func (s State) IsGoalExceeded() bool {
	if s.Goal == nil {
		return false
	}
	return s.TotalCalories() > s.Goal.DailyTarget
}

// PendingDecision is raised when an added name matches an entry already
// logged for the day. It waits for AddAnyway, ReplaceExisting or
// CancelPending.
type PendingDecision struct {
	Input    model.ValidatedInput `json:"input"`
	Existing model.FoodEntry      `json:"existing"`
	Title    string               `json:"title"`
	Message  string               `json:"message"`
}

func newPendingDecision(input model.ValidatedInput, existing model.FoodEntry, lang validation.Lang) *PendingDecision {
	p := &PendingDecision{Input: input, Existing: existing}
	if lang == validation.LangRussian {
		p.Title = "Продукт уже добавлен"
		p.Message = fmt.Sprintf("%q уже добавлен сегодня с %d ккал.\n\nДобавить ещё раз с %d ккал или заменить существующий?",
			existing.Name, existing.Calories, input.Calories)
		return p
	}
	p.Title = "Product already added"
	p.Message = fmt.Sprintf("%q is already added today with %d kcal.\n\nDo you want to add it again with %d kcal or replace the existing one?",
		existing.Name, existing.Calories, input.Calories)
	return p
}
