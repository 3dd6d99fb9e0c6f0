package service

import (
	"context"
	"log/slog"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/sakif/calorie-calculator/internal/duplicate"
	"github.com/sakif/calorie-calculator/internal/model"
	"github.com/sakif/calorie-calculator/internal/validation"
)

// =========================================================================
// MOCK REPOSITORIES
// =========================================================================
//
// mockFoodRepo keeps entries in a slice and answers fetches the way a store
// would: same UTC day, newest first. Each operation has its own error field
// so a test can fail exactly one step.

type mockFoodRepo struct {
	mu      sync.Mutex
	entries []model.FoodEntry

	fetchErr  error
	createErr error
	updateErr error
	deleteErr error

	fetches int
	creates int
	deletes []string
	updates []model.FoodEntry

	// block holds a fetch for the given day until the channel is closed;
	// started is signalled once the blocked fetch has begun.
	block   map[string]chan struct{}
	started chan string
}

func newMockFoodRepo(entries ...model.FoodEntry) *mockFoodRepo {
	return &mockFoodRepo{entries: entries}
}

func (m *mockFoodRepo) FetchFoodItems(_ context.Context, date time.Time) ([]model.FoodEntry, error) {
	key := date.UTC().Format(time.DateOnly)

	m.mu.Lock()
	m.fetches++
	wait := m.block[key]
	m.mu.Unlock()

	if wait != nil {
		m.started <- key
		<-wait
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	result := make([]model.FoodEntry, 0)
	for _, e := range m.entries {
		if e.Timestamp.UTC().Format(time.DateOnly) == key {
			result = append(result, e)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})
	return result, nil
}

func (m *mockFoodRepo) CreateFood(_ context.Context, entry model.FoodEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	if m.createErr != nil {
		return m.createErr
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockFoodRepo) UpdateFood(_ context.Context, entry model.FoodEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates = append(m.updates, entry)
	if m.updateErr != nil {
		return m.updateErr
	}
	for i := range m.entries {
		if m.entries[i].ID == entry.ID {
			m.entries[i] = entry
		}
	}
	return nil
}

func (m *mockFoodRepo) DeleteFood(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes = append(m.deletes, id)
	if m.deleteErr != nil {
		return m.deleteErr
	}
	for i := range m.entries {
		if m.entries[i].ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			break
		}
	}
	return nil
}

type mockGoalRepo struct {
	goal *model.CalorieGoal

	fetchErr  error
	saveErr   error
	deleteErr error

	saves   int
	deleted string
}

func (m *mockGoalRepo) FetchGoal(_ context.Context, _ time.Time) (*model.CalorieGoal, error) {
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	if m.goal == nil {
		return nil, nil
	}
	g := *m.goal
	return &g, nil
}

func (m *mockGoalRepo) SaveOrUpdateGoal(_ context.Context, target int, date time.Time) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	if m.goal != nil {
		m.goal.DailyTarget = target
		m.goal.Date = date
		return nil
	}
	g := model.NewCalorieGoal(target, date)
	m.goal = &g
	return nil
}

func (m *mockGoalRepo) DeleteGoal(_ context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = id
	m.goal = nil
	return nil
}

// =========================================================================
// TEST HELPERS
// =========================================================================

var testNow = time.Date(2026, time.October, 14, 12, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestCalculator(t *testing.T, foods *mockFoodRepo, goals *mockGoalRepo, opts ...Option) *Calculator {
	t.Helper()
	opts = append([]Option{WithClock(func() time.Time { return testNow })}, opts...)
	return NewCalculator(foods, goals, validation.NewValidator(), duplicate.NewChecker(), testLogger(), opts...)
}

func entryAt(id, name string, calories int, at time.Time) model.FoodEntry {
	return model.FoodEntry{ID: id, Name: name, Calories: calories, Timestamp: at}
}
