package repository

import (
	"context"
	"time"

	"github.com/sakif/calorie-calculator/internal/apperror"
	"github.com/sakif/calorie-calculator/internal/model"
	"github.com/sakif/calorie-calculator/internal/store"
)

// Goal target bounds. Kept apart from the food calorie bounds in the
// validation package: the two happen to match today but are separate rules.
const (
	MinGoalTarget = 1
	MaxGoalTarget = 10_000
)

var _ GoalRepository = (*GoalRepo)(nil)

type GoalRepo struct {
	store store.GoalStore
}

func NewGoalRepo(s store.GoalStore) *GoalRepo {
	return &GoalRepo{store: s}
}

func (r *GoalRepo) FetchGoal(ctx context.Context, date time.Time) (*model.CalorieGoal, error) {
	rec, err := r.store.FetchGoal(ctx, date)
	if err != nil {
		return nil, apperror.GoalFetchFailed(reason(err))
	}
	if rec == nil {
		return nil, nil
	}
	goal := toGoal(*rec)
	return &goal, nil
}

// SaveOrUpdateGoal checks the target range before touching the store. Goals
// are set through their own numeric entry path, so the text validator never
// sees them.
func (r *GoalRepo) SaveOrUpdateGoal(ctx context.Context, target int, date time.Time) error {
	if target < MinGoalTarget {
		return apperror.InvalidTarget("Calorie target must be greater than 0")
	}
	if target > MaxGoalTarget {
		return apperror.InvalidTarget("Calorie target cannot exceed 10,000")
	}

	existing, err := r.store.FetchGoal(ctx, date)
	if err != nil {
		return apperror.GoalSaveFailed(reason(err))
	}

	if existing != nil {
		err = r.store.UpdateGoal(ctx, store.GoalRecord{
			ID:          existing.ID,
			DailyTarget: target,
			Date:        date,
		})
	} else {
		err = r.store.SaveGoal(ctx, toGoalRecord(model.NewCalorieGoal(target, date)))
	}
	if err != nil {
		return apperror.GoalSaveFailed(reason(err))
	}
	return nil
}

func (r *GoalRepo) DeleteGoal(ctx context.Context, id string) error {
	if err := r.store.DeleteGoal(ctx, id); err != nil {
		return apperror.GoalDeleteFailed(reason(err))
	}
	return nil
}

func toGoal(rec store.GoalRecord) model.CalorieGoal {
	return model.CalorieGoal{
		ID:          rec.ID,
		DailyTarget: rec.DailyTarget,
		Date:        rec.Date,
	}
}

func toGoalRecord(g model.CalorieGoal) store.GoalRecord {
	return store.GoalRecord{
		ID:          g.ID,
		DailyTarget: g.DailyTarget,
		Date:        g.Date,
	}
}
