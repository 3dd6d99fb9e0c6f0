package repository

import (
	"context"
	"time"

	"github.com/sakif/calorie-calculator/internal/store"
)

// =========================================================================
// MOCK STORES
// =========================================================================
//
// Each mock records the last record it received and returns whatever error
// the test put in its err field.

type mockFoodStore struct {
	records []store.FoodRecord
	err     error

	created *store.FoodRecord
	updated *store.FoodRecord
	deleted string
}

func (m *mockFoodStore) FetchItems(_ context.Context, _ time.Time) ([]store.FoodRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.records, nil
}

func (m *mockFoodStore) Create(_ context.Context, rec store.FoodRecord) error {
	if m.err != nil {
		return m.err
	}
	m.created = &rec
	return nil
}

func (m *mockFoodStore) Update(_ context.Context, rec store.FoodRecord) error {
	if m.err != nil {
		return m.err
	}
	m.updated = &rec
	return nil
}

func (m *mockFoodStore) Delete(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = id
	return nil
}

type mockGoalStore struct {
	goal *store.GoalRecord

	fetchErr  error
	saveErr   error
	updateErr error
	deleteErr error

	saved    *store.GoalRecord
	updated  *store.GoalRecord
	deleted  string
	fetches  int
	lastDate time.Time
}

func (m *mockGoalStore) FetchGoal(_ context.Context, date time.Time) (*store.GoalRecord, error) {
	m.fetches++
	m.lastDate = date
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.goal, nil
}

func (m *mockGoalStore) SaveGoal(_ context.Context, rec store.GoalRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = &rec
	return nil
}

func (m *mockGoalStore) UpdateGoal(_ context.Context, rec store.GoalRecord) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updated = &rec
	return nil
}

func (m *mockGoalStore) DeleteGoal(_ context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = id
	return nil
}
