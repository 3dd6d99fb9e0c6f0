package service

import (
	"errors"
	"log/slog"

	"github.com/sakif/calorie-calculator/internal/apperror"
	"github.com/sakif/calorie-calculator/internal/validation"
)

// fail records a food-side or validation failure and returns err unchanged.
//
// Validation errors show their localized text. Food errors show the
// descriptive message; the short label goes to the log.
func (c *Calculator) fail(op string, err error) error {
	var (
		ve *validation.Error
		ae *apperror.AppError
	)
	switch {
	case errors.As(err, &ve):
		c.logger.Info("input rejected",
			slog.String("op", op),
			slog.String("kind", string(ve.Kind)),
		)
		c.show(ve.Localize(c.lang))
	case errors.As(err, &ae):
		c.logger.Error("food operation failed",
			slog.String("op", op),
			slog.String("label", ae.UserMessage()),
		)
		c.show(ae.Message)
	default:
		c.logger.Error("unexpected error",
			slog.String("op", op),
			slog.String("error", err.Error()),
		)
		c.show(err.Error())
	}
	return err
}

// failGoal records a goal failure. Here the label is shown and the
// descriptive message logged.
func (c *Calculator) failGoal(op string, err error) error {
	var ae *apperror.AppError
	if errors.As(err, &ae) {
		c.logger.Error("goal operation failed",
			slog.String("op", op),
			slog.String("error", ae.Message),
		)
		c.show(ae.UserMessage())
		return err
	}
	return c.fail(op, err)
}

func (c *Calculator) show(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ErrorMessage = msg
	c.state.ShowError = true
}
