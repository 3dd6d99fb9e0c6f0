// Package calendar computes calendar-day boundaries in one fixed time zone.
//
// Both stores use the same Calendar for reads and writes, so an entry created
// "now" always lands inside Bounds(now).
package calendar

import (
	"errors"
	"time"
)

// ErrInvalidRange is returned when a day's bounds cannot be represented.
var ErrInvalidRange = errors.New("calendar: invalid date range")

// Times are persisted as Unix nanoseconds, which cover 1677-09-21 through
// 2262-04-11. Days that touch either edge are rejected.
var (
	minDay = time.Date(1678, time.January, 1, 0, 0, 0, 0, time.UTC)
	maxDay = time.Date(2262, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// Calendar resolves days in Location. A nil Location means time.Local.
type Calendar struct {
	Location *time.Location
}

// New returns a Calendar for loc.
func New(loc *time.Location) Calendar {
	return Calendar{Location: loc}
}

func (c Calendar) loc() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

// In converts t to the calendar's location.
func (c Calendar) In(t time.Time) time.Time {
	return t.In(c.loc())
}

// StartOfDay returns local midnight of t's day.
func (c Calendar) StartOfDay(t time.Time) time.Time {
	t = t.In(c.loc())
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.loc())
}

// Bounds returns the half-open range [start, end) covering t's day.
// end is the next local midnight, so DST days are 23 or 25 hours long.
func (c Calendar) Bounds(t time.Time) (start, end time.Time, err error) {
	start = c.StartOfDay(t)
	end = start.AddDate(0, 0, 1)

	if !end.After(start) || start.Before(minDay) || !end.Before(maxDay) {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	return start, end, nil
}

// SameDay reports whether a and b fall on the same calendar day.
func (c Calendar) SameDay(a, b time.Time) bool {
	return c.StartOfDay(a).Equal(c.StartOfDay(b))
}

// ParseDay parses a YYYY-MM-DD string as midnight of that day.
func (c Calendar) ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(time.DateOnly, s, c.loc())
}

// FormatDay formats t's day as YYYY-MM-DD.
func (c Calendar) FormatDay(t time.Time) string {
	return t.In(c.loc()).Format(time.DateOnly)
}
