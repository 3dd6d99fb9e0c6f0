// Package service contains the calculator: the one object the HTTP API and
// the CLI talk to.
//
// THE LAYERS:
//
//	Handler / CLI  → parse input, render state
//	Calculator     → validation, duplicate decisions, derived totals
//	Repository     → domain errors, record mapping
//	Store          → SQL (or memory)
//
// The calculator holds the entries and goal of the day being viewed. Every
// operation records its outcome in that state (error message + show flag)
// and also returns the error, so a caller can react without reading state.
//
// CONCURRENCY:
// Mutating operations are serialized by opMu. The state itself is guarded
// by mu, which is only ever held for short copies. LoadDay does not take
// opMu; instead each load gets a sequence number and a load that finishes
// after a newer one started is dropped.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/sakif/calorie-calculator/internal/duplicate"
	"github.com/sakif/calorie-calculator/internal/model"
	"github.com/sakif/calorie-calculator/internal/repository"
	"github.com/sakif/calorie-calculator/internal/validation"
)

// ErrNoPending is returned by AddAnyway and ReplaceExisting when no
// duplicate decision is waiting.
var ErrNoPending = errors.New("no pending duplicate decision")

// InputValidator parses one free-text food line.
type InputValidator interface {
	Validate(raw string) (model.ValidatedInput, error)
}

// DuplicateChecker finds an already logged entry with the same name.
type DuplicateChecker interface {
	CheckForDuplicate(name string, candidates []model.FoodEntry) duplicate.Result
}

// Compile-time checks that the real implementations fit.
var (
	_ InputValidator   = validation.Validator{}
	_ DuplicateChecker = duplicate.Checker{}
)

type Calculator struct {
	foods     repository.FoodRepository
	goals     repository.GoalRepository
	validator InputValidator
	checker   DuplicateChecker
	logger    *slog.Logger

	now  func() time.Time
	lang validation.Lang

	opMu sync.Mutex

	mu      sync.Mutex
	state   State
	loadSeq uint64
}

// Option customizes a Calculator.
type Option func(*Calculator)

// WithClock replaces time.Now. New entries are stamped with it and it picks
// the day to reload before any day was loaded.
func WithClock(now func() time.Time) Option {
	return func(c *Calculator) { c.now = now }
}

// WithLanguage sets the language of validation messages and duplicate
// prompts. The default is English.
func WithLanguage(lang validation.Lang) Option {
	return func(c *Calculator) { c.lang = lang }
}

func NewCalculator(
	foods repository.FoodRepository,
	goals repository.GoalRepository,
	validator InputValidator,
	checker DuplicateChecker,
	logger *slog.Logger,
	opts ...Option,
) *Calculator {
	c := &Calculator{
		foods:     foods,
		goals:     goals,
		validator: validator,
		checker:   checker,
		logger:    logger,
		now:       time.Now,
		lang:      validation.LangEnglish,
		state:     State{Entries: []model.FoodEntry{}},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a copy of the current state.
func (c *Calculator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// LoadDay fetches the entries and goal for date's day.
//
// An entry fetch failure is recorded and leaves the list empty. A goal
// fetch failure is not shown to anyone: the day simply has no goal. Entry
// loading never waits on or fails because of the goal.
func (c *Calculator) LoadDay(ctx context.Context, date time.Time) error {
	c.mu.Lock()
	c.loadSeq++
	seq := c.loadSeq
	c.state.Day = date
	c.state.IsLoading = true
	c.state.ErrorMessage = ""
	c.state.ShowError = false
	c.mu.Unlock()

	entries, err := c.foods.FetchFoodItems(ctx, date)

	goal, goalErr := c.goals.FetchGoal(ctx, date)
	if goalErr != nil {
		c.logger.Debug("goal not loaded, treating day as without goal",
			slog.String("day", date.Format(time.DateOnly)),
			slog.String("error", goalErr.Error()),
		)
		goal = nil
	}

	c.mu.Lock()
	if seq != c.loadSeq {
		// a newer load owns the state now
		c.mu.Unlock()
		c.logger.Debug("dropping stale day load", slog.Uint64("seq", seq))
		return err
	}
	if err != nil {
		entries = []model.FoodEntry{}
	}
	c.state.Entries = entries
	c.state.Goal = goal
	c.state.IsLoading = false
	c.mu.Unlock()

	if err != nil {
		return c.fail("load day", err)
	}
	return nil
}

// reload refreshes the day currently viewed, or today if none was loaded.
func (c *Calculator) reload(ctx context.Context) error {
	c.mu.Lock()
	day := c.state.Day
	c.mu.Unlock()
	if day.IsZero() {
		day = c.now()
	}
	return c.LoadDay(ctx, day)
}

// DismissError hides the current error message.
func (c *Calculator) DismissError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ErrorMessage = ""
	c.state.ShowError = false
}

func (c *Calculator) setPending(p *PendingDecision) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Pending = p
}

func (c *Calculator) pending() *PendingDecision {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Pending == nil {
		return nil
	}
	p := *c.state.Pending
	return &p
}

func (c *Calculator) entries() []model.FoodEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.FoodEntry(nil), c.state.Entries...)
}
