package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sakif/calorie-calculator/internal/apperror"
	"github.com/sakif/calorie-calculator/internal/model"
	"github.com/sakif/calorie-calculator/internal/store"
)

var _ FoodRepository = (*FoodRepo)(nil)

type FoodRepo struct {
	store store.FoodStore
}

func NewFoodRepo(s store.FoodStore) *FoodRepo {
	return &FoodRepo{store: s}
}

func (r *FoodRepo) FetchFoodItems(ctx context.Context, date time.Time) ([]model.FoodEntry, error) {
	records, err := r.store.FetchItems(ctx, date)
	if err != nil {
		return nil, mapFoodError(err, apperror.CannotLoadFoods)
	}

	entries := make([]model.FoodEntry, len(records))
	for i, rec := range records {
		entries[i] = toEntry(rec)
	}
	return entries, nil
}

func (r *FoodRepo) CreateFood(ctx context.Context, entry model.FoodEntry) error {
	if err := r.store.Create(ctx, toRecord(entry)); err != nil {
		return mapFoodError(err, apperror.CannotSaveFood)
	}
	return nil
}

func (r *FoodRepo) UpdateFood(ctx context.Context, entry model.FoodEntry) error {
	if err := r.store.Update(ctx, toRecord(entry)); err != nil {
		return mapFoodError(err, apperror.CannotSaveFood)
	}
	return nil
}

func (r *FoodRepo) DeleteFood(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, id); err != nil {
		return mapFoodError(err, apperror.CannotSaveFood)
	}
	return nil
}

// mapFoodError converts a store failure into its domain counterpart.
// fallback is used for errors that are not store errors at all, so a read
// reports "cannot load" and a write "cannot save".
func mapFoodError(err error, fallback func(string) *apperror.AppError) *apperror.AppError {
	var se *store.Error
	if !errors.As(err, &se) {
		return fallback(err.Error())
	}

	switch {
	case errors.Is(se, store.ErrItemNotFound):
		return apperror.FoodItemNotFound(se.ID)
	case errors.Is(se, store.ErrStorageFull):
		return apperror.DeviceStorageExhausted()
	case errors.Is(se, store.ErrDuplicateItem):
		return apperror.DuplicateFoodEntry(se.ID)
	case errors.Is(se, store.ErrInvalidDateRange):
		return apperror.InvalidDate()
	case errors.Is(se, store.ErrFetchFailed):
		return apperror.CannotLoadFoods(se.Reason())
	default:
		// SaveFailed, UpdateFailed, DeleteFailed
		return apperror.CannotSaveFood(se.Reason())
	}
}

func toEntry(rec store.FoodRecord) model.FoodEntry {
	return model.FoodEntry{
		ID:        rec.ID,
		Name:      rec.Name,
		Calories:  rec.Calories,
		Image:     rec.Image,
		Timestamp: rec.Timestamp,
	}
}

func toRecord(e model.FoodEntry) store.FoodRecord {
	return store.FoodRecord{
		ID:        e.ID,
		Name:      e.Name,
		Calories:  e.Calories,
		Image:     e.Image,
		Timestamp: e.Timestamp,
	}
}
