package calendar

import (
	"errors"
	"testing"
	"time"
)

func TestBounds(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	cal := New(loc)

	at := time.Date(2026, time.October, 14, 23, 59, 59, 0, loc)
	start, end, err := cal.Bounds(at)
	if err != nil {
		t.Fatalf("Bounds() error = %v", err)
	}

	wantStart := time.Date(2026, time.October, 14, 0, 0, 0, 0, loc)
	wantEnd := time.Date(2026, time.October, 15, 0, 0, 0, 0, loc)
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
	if !end.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", end, wantEnd)
	}
}

func TestBounds_UsesCalendarLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	cal := New(loc)

	// 02:00 UTC on the 15th is still the 14th in UTC-5
	at := time.Date(2026, time.October, 15, 2, 0, 0, 0, time.UTC)
	start, _, err := cal.Bounds(at)
	if err != nil {
		t.Fatalf("Bounds() error = %v", err)
	}
	if got := cal.FormatDay(start); got != "2026-10-14" {
		t.Errorf("day = %s, want 2026-10-14", got)
	}
}

func TestBounds_DST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	cal := New(loc)

	start, end, err := cal.Bounds(time.Date(2026, time.March, 8, 12, 0, 0, 0, loc))
	if err != nil {
		t.Fatalf("Bounds() error = %v", err)
	}
	if got := end.Sub(start); got != 23*time.Hour {
		t.Errorf("spring-forward day length = %v, want 23h", got)
	}
}

func TestBounds_OutOfRange(t *testing.T) {
	cal := New(time.UTC)

	for _, at := range []time.Time{
		time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1600, time.June, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2300, time.June, 1, 0, 0, 0, 0, time.UTC),
	} {
		if _, _, err := cal.Bounds(at); !errors.Is(err, ErrInvalidRange) {
			t.Errorf("Bounds(%v) error = %v, want ErrInvalidRange", at, err)
		}
	}
}

func TestSameDay(t *testing.T) {
	cal := New(time.UTC)
	a := time.Date(2026, time.October, 14, 0, 0, 0, 0, time.UTC)

	if !cal.SameDay(a, a.Add(23*time.Hour+59*time.Minute)) {
		t.Error("SameDay() = false for times within one day")
	}
	if cal.SameDay(a, a.Add(24*time.Hour)) {
		t.Error("SameDay() = true for next midnight")
	}
}

func TestParseDay(t *testing.T) {
	cal := New(time.UTC)

	got, err := cal.ParseDay("2026-10-14")
	if err != nil {
		t.Fatalf("ParseDay() error = %v", err)
	}
	if want := time.Date(2026, time.October, 14, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("ParseDay() = %v, want %v", got, want)
	}

	if _, err := cal.ParseDay("14/10/2026"); err == nil {
		t.Error("ParseDay() accepted a non ISO date")
	}
}
