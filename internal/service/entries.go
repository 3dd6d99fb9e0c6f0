package service

import (
	"context"
	"log/slog"

	"github.com/sakif/calorie-calculator/internal/apperror"
	"github.com/sakif/calorie-calculator/internal/model"
)

// AddEntry parses raw and logs it for today.
//
// When the name matches an entry of the viewed day nothing is written:
// the returned PendingDecision (also kept in state) waits for AddAnyway,
// ReplaceExisting or CancelPending. A new AddEntry replaces any decision that
// was still waiting.
func (c *Calculator) AddEntry(ctx context.Context, raw string) (*PendingDecision, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	input, err := c.validator.Validate(raw)
	if err != nil {
		return nil, c.fail("add entry", err)
	}

	result := c.checker.CheckForDuplicate(input.Name, c.entries())
	if existing, ok := result.Existing(); ok {
		p := newPendingDecision(input, existing, c.lang)
		c.setPending(p)
		c.logger.Info("duplicate entry held for decision",
			slog.String("name", input.Name),
			slog.String("existing_id", existing.ID),
		)
		pp := *p
		return &pp, nil
	}

	c.setPending(nil)
	if err := c.create(ctx, input); err != nil {
		return nil, c.fail("add entry", err)
	}
	return nil, c.reload(ctx)
}

// AddAnyway logs the waiting input next to the entry it duplicates.
// The decision is cleared whether or not the write succeeds.
func (c *Calculator) AddAnyway(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	p := c.pending()
	if p == nil {
		return ErrNoPending
	}
	c.setPending(nil)

	if err := c.create(ctx, p.Input); err != nil {
		return c.fail("add anyway", err)
	}
	return c.reload(ctx)
}

// ReplaceExisting deletes the matched entry and logs the waiting input in
// its place. The decision is cleared on every path. If the delete went
// through but the create did not, the day is reloaded before the error is
// recorded so the list no longer shows the deleted entry.
func (c *Calculator) ReplaceExisting(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	p := c.pending()
	if p == nil {
		return ErrNoPending
	}
	c.setPending(nil)

	if err := c.foods.DeleteFood(ctx, p.Existing.ID); err != nil {
		return c.fail("replace entry", err)
	}
	if err := c.create(ctx, p.Input); err != nil {
		_ = c.reload(ctx)
		return c.fail("replace entry", err)
	}

	c.logger.Info("entry replaced",
		slog.String("old_id", p.Existing.ID),
		slog.String("name", p.Input.Name),
	)
	return c.reload(ctx)
}

// CancelPending drops the waiting decision without writing anything.
func (c *Calculator) CancelPending() {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	c.setPending(nil)
}

// DeleteEntry removes an entry and reloads the day.
func (c *Calculator) DeleteEntry(ctx context.Context, id string) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if err := c.foods.DeleteFood(ctx, id); err != nil {
		return c.fail("delete entry", err)
	}
	c.logger.Info("entry deleted", slog.String("id", id))
	return c.reload(ctx)
}

// UpdateEntry writes entry as given. The in-memory list is not resynced;
// the caller already holds the edited value.
func (c *Calculator) UpdateEntry(ctx context.Context, entry model.FoodEntry) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	return c.update(ctx, entry)
}

// EditEntry re-parses raw for an entry of the viewed day and updates its
// name and calories. Image and timestamp stay as they were.
func (c *Calculator) EditEntry(ctx context.Context, id, raw string) (model.FoodEntry, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	input, err := c.validator.Validate(raw)
	if err != nil {
		return model.FoodEntry{}, c.fail("edit entry", err)
	}

	entry, ok := c.findEntry(id)
	if !ok {
		return model.FoodEntry{}, c.fail("edit entry", apperror.FoodItemNotFound(id))
	}
	entry.Name = input.Name
	entry.Calories = input.Calories

	if err := c.update(ctx, entry); err != nil {
		return model.FoodEntry{}, err
	}

	c.mu.Lock()
	for i := range c.state.Entries {
		if c.state.Entries[i].ID == id {
			c.state.Entries[i] = entry
			break
		}
	}
	c.mu.Unlock()
	return entry, nil
}

func (c *Calculator) create(ctx context.Context, input model.ValidatedInput) error {
	entry := model.NewFoodEntry(input.Name, input.Calories, c.now())
	if err := c.foods.CreateFood(ctx, entry); err != nil {
		return err
	}
	c.logger.Info("entry created",
		slog.String("id", entry.ID),
		slog.String("name", entry.Name),
		slog.Int("calories", entry.Calories),
	)
	return nil
}

func (c *Calculator) update(ctx context.Context, entry model.FoodEntry) error {
	if err := c.foods.UpdateFood(ctx, entry); err != nil {
		return c.fail("update entry", err)
	}
	c.logger.Info("entry updated",
		slog.String("id", entry.ID),
		slog.String("name", entry.Name),
	)
	return nil
}

func (c *Calculator) findEntry(id string) (model.FoodEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.state.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return model.FoodEntry{}, false
}
