// Package memory implements the food and goal stores in process memory.
// Used by tests and by the CLI's --db=memory mode; nothing survives a restart.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sakif/calorie-calculator/internal/calendar"
	"github.com/sakif/calorie-calculator/internal/store"
)

var (
	_ store.FoodStore = (*FoodStore)(nil)
	_ store.GoalStore = (*GoalStore)(nil)
)

// FoodStore keeps food records in a map keyed by ID.
type FoodStore struct {
	mu       sync.RWMutex
	cal      calendar.Calendar
	items    map[string]store.FoodRecord
	capacity int // 0 means unlimited
}

// NewFoodStore creates an empty store. capacity caps the number of records;
// once reached, Create fails with store.ErrStorageFull. Zero disables the cap.
func NewFoodStore(cal calendar.Calendar, capacity int) *FoodStore {
	return &FoodStore{
		cal:      cal,
		items:    make(map[string]store.FoodRecord),
		capacity: capacity,
	}
}

func (s *FoodStore) FetchItems(_ context.Context, date time.Time) ([]store.FoodRecord, error) {
	start, end, err := s.cal.Bounds(date)
	if err != nil {
		return nil, store.InvalidDateRange()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]store.FoodRecord, 0)
	for _, rec := range s.items {
		if !rec.Timestamp.Before(start) && rec.Timestamp.Before(end) {
			result = append(result, copyFood(rec))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Timestamp.Equal(result[j].Timestamp) {
			return result[i].ID > result[j].ID
		}
		return result[i].Timestamp.After(result[j].Timestamp)
	})
	return result, nil
}

func (s *FoodStore) Create(_ context.Context, rec store.FoodRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[rec.ID]; exists {
		return store.DuplicateItem(rec.ID)
	}
	if s.capacity > 0 && len(s.items) >= s.capacity {
		return store.StorageFull()
	}
	s.items[rec.ID] = copyFood(rec)
	return nil
}

func (s *FoodStore) Update(_ context.Context, rec store.FoodRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[rec.ID]; !exists {
		return store.ItemNotFound(rec.ID)
	}
	s.items[rec.ID] = copyFood(rec)
	return nil
}

func (s *FoodStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; !exists {
		return store.ItemNotFound(id)
	}
	delete(s.items, id)
	return nil
}

// Len reports how many records are stored across all days.
func (s *FoodStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// copyFood detaches the image bytes so callers cannot mutate stored state.
func copyFood(rec store.FoodRecord) store.FoodRecord {
	if rec.Image != nil {
		rec.Image = append([]byte(nil), rec.Image...)
	}
	return rec
}

// GoalStore keeps goal records in a map keyed by ID.
type GoalStore struct {
	mu    sync.RWMutex
	cal   calendar.Calendar
	goals map[string]store.GoalRecord
}

func NewGoalStore(cal calendar.Calendar) *GoalStore {
	return &GoalStore{
		cal:   cal,
		goals: make(map[string]store.GoalRecord),
	}
}

// FetchGoal returns the latest goal on date's day, or nil.
func (s *GoalStore) FetchGoal(_ context.Context, date time.Time) (*store.GoalRecord, error) {
	start, end, err := s.cal.Bounds(date)
	if err != nil {
		return nil, store.InvalidDateRange()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *store.GoalRecord
	for _, g := range s.goals {
		if g.Date.Before(start) || !g.Date.Before(end) {
			continue
		}
		if found == nil || g.Date.After(found.Date) {
			g := g
			found = &g
		}
	}
	return found, nil
}

func (s *GoalStore) SaveGoal(_ context.Context, rec store.GoalRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.goals[rec.ID]; exists {
		return store.DuplicateItem(rec.ID)
	}
	s.goals[rec.ID] = rec
	return nil
}

func (s *GoalStore) UpdateGoal(_ context.Context, rec store.GoalRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.goals[rec.ID]; !exists {
		return store.GoalNotFound()
	}
	s.goals[rec.ID] = rec
	return nil
}

func (s *GoalStore) DeleteGoal(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.goals[id]; !exists {
		return store.GoalNotFound()
	}
	delete(s.goals, id)
	return nil
}
