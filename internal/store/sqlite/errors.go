package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	sqlitedriver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/sakif/calorie-calculator/internal/calendar"
	"github.com/sakif/calorie-calculator/internal/store"
)

// mapWriteError turns an engine error from an insert, update or delete into
// a store error. Errors that are already store errors pass through.
//
// modernc reports extended result codes, so a primary-key clash arrives as
// SQLITE_CONSTRAINT_PRIMARYKEY rather than plain SQLITE_CONSTRAINT.
func mapWriteError(err error, id string) error {
	var se *store.Error
	if errors.As(err, &se) {
		return se
	}

	var sqliteErr *sqlitedriver.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		switch {
		case code&0xff == sqlite3.SQLITE_FULL:
			return store.StorageFull()
		case code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, code == sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return store.DuplicateItem(id)
		}
	}
	return store.SaveFailed(err)
}

// withTx runs fn inside a transaction. A non-nil error from fn or from
// Commit rolls everything back, leaving the prior state untouched. The raw
// error is returned; callers map it.
func withTx(ctx context.Context, conn *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Instants representable as int64 Unix nanoseconds.
var (
	minStorable = time.Unix(0, math.MinInt64)
	maxStorable = time.Unix(0, math.MaxInt64)
)

// checkStorable rejects instants that toNanos would overflow.
func checkStorable(t time.Time) error {
	if t.Before(minStorable) || t.After(maxStorable) {
		return store.SaveFailed(fmt.Errorf("timestamp %s out of storable range", t.UTC().Format(time.RFC3339)))
	}
	return nil
}

// toNanos and fromNanos convert between time.Time and the INTEGER columns.
func toNanos(t time.Time) int64 {
	return t.UnixNano()
}

func fromNanos(ns int64, cal calendar.Calendar) time.Time {
	return cal.In(time.Unix(0, ns))
}

// nullableBlob binds a nil slice as SQL NULL.
func nullableBlob(b []byte) any {
	if b == nil {
		return nil
	}
	return b
}
