package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/calorie-calculator/internal/calendar"
	"github.com/sakif/calorie-calculator/internal/store"
)

var cal = calendar.New(time.UTC)

func at(hour int) time.Time {
	return time.Date(2026, time.March, 8, hour, 0, 0, 0, time.UTC)
}

func TestFoodStore_FetchItems(t *testing.T) {
	s := NewFoodStore(cal, 0)
	ctx := context.Background()

	midnight := at(0)
	require.NoError(t, s.Create(ctx, store.FoodRecord{ID: "a", Name: "Oats", Calories: 150, Timestamp: midnight}))
	require.NoError(t, s.Create(ctx, store.FoodRecord{ID: "b", Name: "Soup", Calories: 200, Timestamp: at(13)}))
	require.NoError(t, s.Create(ctx, store.FoodRecord{ID: "c", Name: "Next", Calories: 10, Timestamp: midnight.AddDate(0, 0, 1)}))
	require.NoError(t, s.Create(ctx, store.FoodRecord{ID: "d", Name: "Prev", Calories: 10, Timestamp: midnight.Add(-time.Nanosecond)}))

	got, err := s.FetchItems(ctx, at(12))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
}

func TestFoodStore_TiesOrderedByID(t *testing.T) {
	s := NewFoodStore(cal, 0)
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, store.FoodRecord{ID: "x1", Name: "A", Calories: 1, Timestamp: at(9)}))
	require.NoError(t, s.Create(ctx, store.FoodRecord{ID: "x2", Name: "B", Calories: 1, Timestamp: at(9)}))

	got, err := s.FetchItems(ctx, at(9))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "x2", got[0].ID)
}

func TestFoodStore_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate id", func(t *testing.T) {
		s := NewFoodStore(cal, 0)
		require.NoError(t, s.Create(ctx, store.FoodRecord{ID: "a", Name: "Oats", Calories: 150, Timestamp: at(8)}))
		err := s.Create(ctx, store.FoodRecord{ID: "a", Name: "Other", Calories: 1, Timestamp: at(9)})
		assert.True(t, errors.Is(err, store.ErrDuplicateItem))
		assert.Equal(t, 1, s.Len())
	})

	t.Run("capacity reached", func(t *testing.T) {
		s := NewFoodStore(cal, 1)
		require.NoError(t, s.Create(ctx, store.FoodRecord{ID: "a", Name: "Oats", Calories: 150, Timestamp: at(8)}))
		err := s.Create(ctx, store.FoodRecord{ID: "b", Name: "Tea", Calories: 2, Timestamp: at(9)})
		assert.True(t, errors.Is(err, store.ErrStorageFull))
	})

	t.Run("update missing", func(t *testing.T) {
		s := NewFoodStore(cal, 0)
		err := s.Update(ctx, store.FoodRecord{ID: "nope"})
		assert.True(t, errors.Is(err, store.ErrItemNotFound))
	})

	t.Run("delete missing", func(t *testing.T) {
		s := NewFoodStore(cal, 0)
		err := s.Delete(ctx, "nope")
		assert.True(t, errors.Is(err, store.ErrItemNotFound))
	})

	t.Run("invalid date", func(t *testing.T) {
		s := NewFoodStore(cal, 0)
		_, err := s.FetchItems(ctx, time.Date(3000, 1, 1, 0, 0, 0, 0, time.UTC))
		assert.True(t, errors.Is(err, store.ErrInvalidDateRange))
	})
}

func TestFoodStore_ImageIsCopied(t *testing.T) {
	s := NewFoodStore(cal, 0)
	ctx := context.Background()
	img := []byte("png")
	require.NoError(t, s.Create(ctx, store.FoodRecord{ID: "a", Name: "Cake", Calories: 400, Image: img, Timestamp: at(16)}))

	img[0] = 'X'
	got, err := s.FetchItems(ctx, at(16))
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), got[0].Image)
}

func TestGoalStore(t *testing.T) {
	s := NewGoalStore(cal)
	ctx := context.Background()

	got, err := s.FetchGoal(ctx, at(12))
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.SaveGoal(ctx, store.GoalRecord{ID: "g1", DailyTarget: 1800, Date: at(7)}))
	require.NoError(t, s.SaveGoal(ctx, store.GoalRecord{ID: "g2", DailyTarget: 2100, Date: at(20)}))

	got, err = s.FetchGoal(ctx, at(0))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "g2", got.ID)

	require.NoError(t, s.UpdateGoal(ctx, store.GoalRecord{ID: "g2", DailyTarget: 2500, Date: at(20)}))
	got, _ = s.FetchGoal(ctx, at(0))
	assert.Equal(t, 2500, got.DailyTarget)

	require.NoError(t, s.DeleteGoal(ctx, "g2"))
	got, _ = s.FetchGoal(ctx, at(0))
	require.NotNil(t, got)
	assert.Equal(t, "g1", got.ID)

	assert.True(t, errors.Is(s.DeleteGoal(ctx, "g2"), store.ErrGoalNotFound))
	assert.True(t, errors.Is(s.UpdateGoal(ctx, store.GoalRecord{ID: "zz"}), store.ErrGoalNotFound))
}
