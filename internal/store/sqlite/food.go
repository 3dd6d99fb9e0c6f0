package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sakif/calorie-calculator/internal/store"
)

// Compile-time check that *DB implements store.FoodStore.
var _ store.FoodStore = (*DB)(nil)

// FetchItems returns every entry whose timestamp lies in
// [startOfDay(date), startOfDay(date)+1 day), newest first.
//
// The half-open range means an entry logged exactly at midnight belongs to
// the day that starts there, never to the day before. Ties on timestamp are
// broken by id so the order is stable.
func (db *DB) FetchItems(ctx context.Context, date time.Time) ([]store.FoodRecord, error) {
	start, end, err := db.cal.Bounds(date)
	if err != nil {
		return nil, store.InvalidDateRange()
	}

	db.mu.RLock()
	defer db.mu.RUnlock()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, calories, image, logged_at
		 FROM food_entries
		 WHERE logged_at >= ? AND logged_at < ?
		 ORDER BY logged_at DESC, id DESC`,
		toNanos(start),
		toNanos(end),
	)
	if err != nil {
		return nil, store.FetchFailed(err)
	}
	// rows holds a pooled connection until closed
	defer rows.Close()

	records := make([]store.FoodRecord, 0)
	for rows.Next() {
		var (
			rec      store.FoodRecord
			loggedAt int64
		)
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Calories, &rec.Image, &loggedAt); err != nil {
			return nil, store.FetchFailed(err)
		}
		rec.Timestamp = fromNanos(loggedAt, db.cal)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, store.FetchFailed(err)
	}

	return records, nil
}

// Create inserts a new entry. The caller supplies the ID.
//
// An existing ID fails with store.ErrDuplicateItem, a full disk with
// store.ErrStorageFull, anything else with store.ErrSaveFailed. So does a
// timestamp outside the int64 nanosecond range. A failed insert is rolled
// back.
func (db *DB) Create(ctx context.Context, rec store.FoodRecord) error {
	if err := checkStorable(rec.Timestamp); err != nil {
		return err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	err := withTx(ctx, db.conn, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO food_entries (id, name, calories, image, logged_at)
			 VALUES (?, ?, ?, ?, ?)`,
			rec.ID,
			rec.Name,
			rec.Calories,
			nullableBlob(rec.Image),
			toNanos(rec.Timestamp),
		)
		return err
	})
	if err != nil {
		return mapWriteError(err, rec.ID)
	}
	return nil
}

// Update overwrites name, calories, image and timestamp of an existing entry.
//
// The lookup runs before the write, inside the same transaction, so a
// missing ID fails with store.ErrItemNotFound and nothing is written.
func (db *DB) Update(ctx context.Context, rec store.FoodRecord) error {
	if err := checkStorable(rec.Timestamp); err != nil {
		return err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	err := withTx(ctx, db.conn, func(tx *sql.Tx) error {
		if err := findFood(ctx, tx, rec.ID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`UPDATE food_entries
			 SET name = ?, calories = ?, image = ?, logged_at = ?
			 WHERE id = ?`,
			rec.Name,
			rec.Calories,
			nullableBlob(rec.Image),
			toNanos(rec.Timestamp),
			rec.ID,
		)
		return err
	})
	if err != nil {
		return mapWriteError(err, rec.ID)
	}
	return nil
}

// Delete removes an entry. A missing ID fails with store.ErrItemNotFound.
func (db *DB) Delete(ctx context.Context, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	err := withTx(ctx, db.conn, func(tx *sql.Tx) error {
		if err := findFood(ctx, tx, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM food_entries WHERE id = ?`, id)
		return err
	})
	if err != nil {
		return mapWriteError(err, id)
	}
	return nil
}

// findFood checks that an entry exists. sql.ErrNoRows becomes ItemNotFound;
// any other lookup failure is a FetchFailed.
func findFood(ctx context.Context, tx *sql.Tx, id string) error {
	var found string
	err := tx.QueryRowContext(ctx, `SELECT id FROM food_entries WHERE id = ?`, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ItemNotFound(id)
	}
	if err != nil {
		return store.FetchFailed(err)
	}
	return nil
}
