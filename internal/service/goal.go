package service

import (
	"context"
	"log/slog"
	"time"
)

// SetGoal saves or overwrites the goal for date's day, then refetches the
// goal of the viewed day. Setting another day's goal leaves the viewed day's
// goal in state. Before any day was loaded, date's day is the one fetched.
func (c *Calculator) SetGoal(ctx context.Context, target int, date time.Time) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if err := c.goals.SaveOrUpdateGoal(ctx, target, date); err != nil {
		return c.failGoal("set goal", err)
	}

	c.mu.Lock()
	viewed := c.state.Day
	c.mu.Unlock()
	if viewed.IsZero() {
		viewed = date
	}

	goal, err := c.goals.FetchGoal(ctx, viewed)
	if err != nil {
		return c.failGoal("set goal", err)
	}

	c.mu.Lock()
	c.state.Goal = goal
	c.mu.Unlock()

	c.logger.Info("goal set",
		slog.Int("target", target),
		slog.String("day", date.Format(time.DateOnly)),
	)
	return nil
}

// DeleteGoal removes the current goal. Without a goal it does nothing.
func (c *Calculator) DeleteGoal(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.mu.Lock()
	goal := c.state.Goal
	c.mu.Unlock()
	if goal == nil {
		return nil
	}

	if err := c.goals.DeleteGoal(ctx, goal.ID); err != nil {
		return c.failGoal("delete goal", err)
	}

	c.mu.Lock()
	c.state.Goal = nil
	c.mu.Unlock()

	c.logger.Info("goal deleted", slog.String("id", goal.ID))
	return nil
}
