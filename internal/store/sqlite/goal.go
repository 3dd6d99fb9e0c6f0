package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/sakif/calorie-calculator/internal/calendar"
	"github.com/sakif/calorie-calculator/internal/store"
)

// compile-time check that *GoalDB implements store.GoalStore
var _ store.GoalStore = (*GoalDB)(nil)

// GoalDB stores calorie goals. It shares the connection pool of the DB that
// created it but has its own lock.
type GoalDB struct {
	conn *sql.DB
	cal  calendar.Calendar
	mu   sync.RWMutex
}

// FetchGoal returns the goal whose date falls on date's calendar day, or nil.
// If several exist the latest by date wins.
func (g *GoalDB) FetchGoal(ctx context.Context, date time.Time) (*store.GoalRecord, error) {
	start, end, err := g.cal.Bounds(date)
	if err != nil {
		return nil, store.InvalidDateRange()
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	var (
		rec      store.GoalRecord
		goalDate int64
	)
	err = g.conn.QueryRowContext(ctx,
		`SELECT id, daily_target, goal_date
		 FROM calorie_goals
		 WHERE goal_date >= ? AND goal_date < ?
		 ORDER BY goal_date DESC
		 LIMIT 1`,
		toNanos(start),
		toNanos(end),
	).Scan(&rec.ID, &rec.DailyTarget, &goalDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, store.FetchFailed(err)
	}

	rec.Date = fromNanos(goalDate, g.cal)
	return &rec, nil
}

// SaveGoal inserts a goal unconditionally. The caller makes sure the day
// has no goal yet.
func (g *GoalDB) SaveGoal(ctx context.Context, rec store.GoalRecord) error {
	if err := checkStorable(rec.Date); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	_, err := g.conn.ExecContext(ctx,
		`INSERT INTO calorie_goals (id, daily_target, goal_date) VALUES (?, ?, ?)`,
		rec.ID,
		rec.DailyTarget,
		toNanos(rec.Date),
	)
	if err != nil {
		return store.SaveFailed(err)
	}
	return nil
}

// UpdateGoal overwrites target and date of an existing goal.
// A missing ID fails with store.ErrGoalNotFound.
func (g *GoalDB) UpdateGoal(ctx context.Context, rec store.GoalRecord) error {
	if err := checkStorable(rec.Date); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	err := withTx(ctx, g.conn, func(tx *sql.Tx) error {
		if err := findGoal(ctx, tx, rec.ID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`UPDATE calorie_goals SET daily_target = ?, goal_date = ? WHERE id = ?`,
			rec.DailyTarget,
			toNanos(rec.Date),
			rec.ID,
		)
		return err
	})
	return goalWriteError(err, store.UpdateFailed)
}

// DeleteGoal removes a goal. A missing ID fails with store.ErrGoalNotFound.
func (g *GoalDB) DeleteGoal(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	err := withTx(ctx, g.conn, func(tx *sql.Tx) error {
		if err := findGoal(ctx, tx, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM calorie_goals WHERE id = ?`, id)
		return err
	})
	return goalWriteError(err, store.DeleteFailed)
}

func findGoal(ctx context.Context, tx *sql.Tx, id string) error {
	var found string
	err := tx.QueryRowContext(ctx, `SELECT id FROM calorie_goals WHERE id = ?`, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return store.GoalNotFound()
	}
	if err != nil {
		return store.FetchFailed(err)
	}
	return nil
}

// goalWriteError keeps store errors as they are and wraps anything else
// with the given kind.
func goalWriteError(err error, wrap func(error) *store.Error) error {
	if err == nil {
		return nil
	}
	var se *store.Error
	if errors.As(err, &se) {
		return se
	}
	return wrap(err)
}
