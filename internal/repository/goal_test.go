package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sakif/calorie-calculator/internal/apperror"
	"github.com/sakif/calorie-calculator/internal/store"
)

func TestFetchGoal(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		repo := NewGoalRepo(&mockGoalStore{})
		got, err := repo.FetchGoal(context.Background(), noon)
		if err != nil || got != nil {
			t.Errorf("FetchGoal() = %v, %v, want nil, nil", got, err)
		}
	})

	t.Run("present", func(t *testing.T) {
		repo := NewGoalRepo(&mockGoalStore{goal: &store.GoalRecord{ID: "g", DailyTarget: 1800, Date: noon}})
		got, err := repo.FetchGoal(context.Background(), noon)
		if err != nil {
			t.Fatalf("FetchGoal() error = %v", err)
		}
		if got == nil || got.ID != "g" || got.DailyTarget != 1800 {
			t.Errorf("FetchGoal() = %+v", got)
		}
	})

	t.Run("failure", func(t *testing.T) {
		repo := NewGoalRepo(&mockGoalStore{fetchErr: store.FetchFailed(errors.New("db closed"))})
		_, err := repo.FetchGoal(context.Background(), noon)
		if !errors.Is(err, apperror.ErrGoalFetch) {
			t.Fatalf("error = %v, want ErrGoalFetch", err)
		}
		if err.Error() != "Failed to fetch goal: db closed" {
			t.Errorf("message = %q", err.Error())
		}
	})
}

func TestSaveOrUpdateGoal_TargetRange(t *testing.T) {
	tests := []struct {
		name    string
		target  int
		wantErr bool
		wantMsg string
	}{
		{"zero", 0, true, "Calorie target must be greater than 0"},
		{"negative", -5, true, "Calorie target must be greater than 0"},
		{"lower bound", MinGoalTarget, false, ""},
		{"upper bound", MaxGoalTarget, false, ""},
		{"above upper bound", MaxGoalTarget + 1, true, "Calorie target cannot exceed 10,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := &mockGoalStore{}
			repo := NewGoalRepo(gs)

			err := repo.SaveOrUpdateGoal(context.Background(), tt.target, noon)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("SaveOrUpdateGoal() error = %v", err)
				}
				return
			}

			if !errors.Is(err, apperror.ErrValidation) {
				t.Fatalf("error = %v, want ErrValidation", err)
			}
			var ae *apperror.AppError
			if errors.As(err, &ae) && ae.UserMessage() != tt.wantMsg {
				t.Errorf("label = %q, want %q", ae.UserMessage(), tt.wantMsg)
			}
			if gs.fetches != 0 {
				t.Errorf("store was consulted %d times for an invalid target", gs.fetches)
			}
		})
	}
}

func TestSaveOrUpdateGoal_CreatesWhenAbsent(t *testing.T) {
	gs := &mockGoalStore{}
	repo := NewGoalRepo(gs)

	if err := repo.SaveOrUpdateGoal(context.Background(), 2000, noon); err != nil {
		t.Fatalf("SaveOrUpdateGoal() error = %v", err)
	}
	if gs.saved == nil {
		t.Fatal("SaveGoal was not called")
	}
	if gs.saved.ID == "" || gs.saved.DailyTarget != 2000 || !gs.saved.Date.Equal(noon) {
		t.Errorf("saved %+v", gs.saved)
	}
	if gs.updated != nil {
		t.Errorf("UpdateGoal called unexpectedly with %+v", gs.updated)
	}
}

func TestSaveOrUpdateGoal_UpdatesInPlace(t *testing.T) {
	gs := &mockGoalStore{goal: &store.GoalRecord{ID: "keep-me", DailyTarget: 1500, Date: noon}}
	repo := NewGoalRepo(gs)
	later := noon.Add(3 * time.Hour)

	if err := repo.SaveOrUpdateGoal(context.Background(), 2200, later); err != nil {
		t.Fatalf("SaveOrUpdateGoal() error = %v", err)
	}
	if gs.saved != nil {
		t.Errorf("SaveGoal called unexpectedly with %+v", gs.saved)
	}
	if gs.updated == nil || gs.updated.ID != "keep-me" || gs.updated.DailyTarget != 2200 || !gs.updated.Date.Equal(later) {
		t.Errorf("updated %+v", gs.updated)
	}
	if !gs.lastDate.Equal(later) {
		t.Errorf("looked up %v, want %v", gs.lastDate, later)
	}
}

func TestSaveOrUpdateGoal_StoreFailures(t *testing.T) {
	tests := []struct {
		name    string
		store   *mockGoalStore
		wantMsg string
	}{
		{
			name:    "lookup fails",
			store:   &mockGoalStore{fetchErr: store.FetchFailed(errors.New("busy"))},
			wantMsg: "Failed to save goal: busy",
		},
		{
			name:    "insert fails",
			store:   &mockGoalStore{saveErr: store.SaveFailed(errors.New("disk full"))},
			wantMsg: "Failed to save goal: disk full",
		},
		{
			name: "update fails",
			store: &mockGoalStore{
				goal:      &store.GoalRecord{ID: "g", DailyTarget: 1, Date: noon},
				updateErr: store.GoalNotFound(),
			},
			wantMsg: "Failed to save goal: calorie goal not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewGoalRepo(tt.store).SaveOrUpdateGoal(context.Background(), 2000, noon)
			if !errors.Is(err, apperror.ErrGoalSave) {
				t.Fatalf("error = %v, want ErrGoalSave", err)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestDeleteGoal(t *testing.T) {
	gs := &mockGoalStore{}
	if err := NewGoalRepo(gs).DeleteGoal(context.Background(), "g1"); err != nil {
		t.Fatalf("DeleteGoal() error = %v", err)
	}
	if gs.deleted != "g1" {
		t.Errorf("deleted %q, want g1", gs.deleted)
	}

	gs = &mockGoalStore{deleteErr: store.GoalNotFound()}
	err := NewGoalRepo(gs).DeleteGoal(context.Background(), "g1")
	if !errors.Is(err, apperror.ErrGoalDelete) {
		t.Fatalf("error = %v, want ErrGoalDelete", err)
	}
	if err.Error() != "Failed to delete goal: calorie goal not found" {
		t.Errorf("message = %q", err.Error())
	}
}
