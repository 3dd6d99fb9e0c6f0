// Package sqlite implements the food and goal stores on top of SQLite.
//
// DRIVER:
// modernc.org/sqlite is a pure Go translation of SQLite, registered with
// database/sql under the name "sqlite". No C toolchain is needed.
//
// SCHEMA:
// Tables are created by goose migrations embedded from migrations/*.sql.
// Instants are stored as INTEGER Unix nanoseconds so that day-range queries
// are plain integer comparisons on an indexed column.
//
// CONCURRENCY:
// Each store holds a sync.RWMutex: writes take it exclusively, reads share
// it. A ":memory:" database lives inside a single connection, so the pool is
// capped at one connection for it; file databases run in WAL mode.
package sqlite

import (
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"

	"github.com/sakif/calorie-calculator/internal/calendar"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database. Handy for tests.
const MemoryPath = ":memory:"

//go:embed migrations/*.sql
var migrations embed.FS

// goose keeps its dialect and filesystem in package globals.
var gooseMu sync.Mutex

// DB owns the connection pool. It implements store.FoodStore itself;
// Goals returns the store.GoalStore that shares the same pool.
type DB struct {
	conn  *sql.DB
	cal   calendar.Calendar
	mu    sync.RWMutex
	goals *GoalDB
}

// New opens (or creates) the database at dbPath and runs migrations.
//
// dbPath examples:
//   - "data/calories.db" → file database (persistent)
//   - MemoryPath         → in-memory database, gone on Close
//
// cal decides day boundaries for every query and must be the same calendar
// the rest of the application uses.
func New(dbPath string, cal calendar.Calendar) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	if dbPath == MemoryPath {
		conn.SetMaxOpenConns(1)
	}

	// sql.Open only prepares the pool; Ping forces a real connection so a
	// bad path fails here instead of on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	if dbPath != MemoryPath {
		if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
			conn.Close()
			return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
		}
	}

	db := &DB{conn: conn, cal: cal}
	db.goals = &GoalDB{conn: conn, cal: cal}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Goals returns the goal store backed by this database.
func (db *DB) Goals() *GoalDB {
	return db.goals
}

// migrate applies every pending migration in migrations/.
func (db *DB) migrate() error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.Up(db.conn, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
