package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/sakif/calorie-calculator/internal/apperror"
	"github.com/sakif/calorie-calculator/internal/calendar"
	"github.com/sakif/calorie-calculator/internal/config"
	"github.com/sakif/calorie-calculator/internal/duplicate"
	"github.com/sakif/calorie-calculator/internal/handler"
	"github.com/sakif/calorie-calculator/internal/repository"
	"github.com/sakif/calorie-calculator/internal/service"
	"github.com/sakif/calorie-calculator/internal/validation"
)

// runner holds what every command needs. Each command opens the database,
// loads one day into a fresh calculator, acts on it and closes again.
type runner struct {
	cfg    config.Config
	cal    calendar.Calendar
	out    io.Writer
	open   opener
	now    func() time.Time
	logger *slog.Logger
}

// session is one command's calculator over an open backend.
type session struct {
	calc  *service.Calculator
	close func() error
}

func (r *runner) session(c *cli.Context, day time.Time) (*session, error) {
	b, err := r.open(c.String("db"), r.cal)
	if err != nil {
		return nil, cli.Exit(err.Error(), ExitDataError)
	}

	calc := service.NewCalculator(
		repository.NewFoodRepo(b.foods),
		repository.NewGoalRepo(b.goals),
		validation.NewValidator(),
		duplicate.NewChecker(),
		r.logger,
		service.WithClock(r.now),
		service.WithLanguage(r.cfg.Lang),
	)
	s := &session{calc: calc, close: b.close}

	if err := calc.LoadDay(c.Context, day); err != nil {
		s.close()
		return nil, exitError(calc, err)
	}
	return s, nil
}

// day reads --date, or today when it is absent.
func (r *runner) day(c *cli.Context) (time.Time, error) {
	raw := c.String("date")
	if raw == "" {
		return r.now(), nil
	}
	d, err := r.cal.ParseDay(raw)
	if err != nil {
		return time.Time{}, cli.Exit(fmt.Sprintf("invalid --date %q, want YYYY-MM-DD", raw), ExitUsageError)
	}
	return d, nil
}

func (r *runner) openDay(c *cli.Context) (*session, error) {
	day, err := r.day(c)
	if err != nil {
		return nil, err
	}
	return r.session(c, day)
}

// exitError turns a calculator failure into an exit. The message is the one
// the calculator put in its state when it has one.
func exitError(calc *service.Calculator, err error) error {
	msg := err.Error()
	if st := calc.State(); st.ShowError && st.ErrorMessage != "" {
		msg = st.ErrorMessage
	}

	var ve *validation.Error
	switch {
	case errors.As(err, &ve), errors.Is(err, apperror.ErrValidation):
		return cli.Exit(msg, ExitUsageError)
	case errors.Is(err, service.ErrNoPending):
		return cli.Exit(msg, ExitGeneralError)
	}
	return cli.Exit(msg, ExitDataError)
}

// text joins the remaining arguments so "calories add Apple 52" works
// without quotes.
func text(args []string) string {
	return strings.Join(args, " ")
}

func (r *runner) add(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("Usage: calories add [--anyway|--replace] <name calories>", ExitUsageError)
	}
	anyway, replace := c.Bool("anyway"), c.Bool("replace")
	if anyway && replace {
		return cli.Exit("--anyway and --replace cannot be combined", ExitUsageError)
	}

	s, err := r.session(c, r.now())
	if err != nil {
		return err
	}
	defer s.close()

	pending, err := s.calc.AddEntry(c.Context, text(c.Args().Slice()))
	if err != nil {
		return exitError(s.calc, err)
	}

	if pending != nil {
		switch {
		case anyway:
			err = s.calc.AddAnyway(c.Context)
		case replace:
			err = s.calc.ReplaceExisting(c.Context)
		default:
			fmt.Fprintf(r.out, "%s\n\n%s\n", pending.Title, pending.Message)
			return cli.Exit("Nothing added. Run again with --anyway or --replace.", ExitGeneralError)
		}
		if err != nil {
			return exitError(s.calc, err)
		}
	}

	return r.printDay(c, s.calc.State())
}

func (r *runner) list(c *cli.Context) error {
	s, err := r.openDay(c)
	if err != nil {
		return err
	}
	defer s.close()

	return r.printDay(c, s.calc.State())
}

func (r *runner) edit(c *cli.Context) error {
	if c.NArg() < 2 {
		return cli.Exit("Usage: calories edit <entry-id> <name calories>", ExitUsageError)
	}

	s, err := r.openDay(c)
	if err != nil {
		return err
	}
	defer s.close()

	id := resolveID(s.calc.State(), c.Args().First())
	if _, err := s.calc.EditEntry(c.Context, id, text(c.Args().Tail())); err != nil {
		return exitError(s.calc, err)
	}
	return r.printDay(c, s.calc.State())
}

func (r *runner) delete(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("Usage: calories delete <entry-id>", ExitUsageError)
	}

	s, err := r.openDay(c)
	if err != nil {
		return err
	}
	defer s.close()

	id := resolveID(s.calc.State(), c.Args().First())
	if err := s.calc.DeleteEntry(c.Context, id); err != nil {
		return exitError(s.calc, err)
	}
	fmt.Fprintf(r.out, "Deleted %s\n", id)
	return nil
}

func (r *runner) setGoal(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("Usage: calories goal set <calories>", ExitUsageError)
	}
	target, err := strconv.Atoi(c.Args().First())
	if err != nil {
		return cli.Exit(fmt.Sprintf("goal must be a whole number, got %q", c.Args().First()), ExitUsageError)
	}

	day, err := r.day(c)
	if err != nil {
		return err
	}
	s, err := r.session(c, day)
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.calc.SetGoal(c.Context, target, day); err != nil {
		return exitError(s.calc, err)
	}
	fmt.Fprintf(r.out, "Goal for %s: %d kcal\n", r.cal.FormatDay(day), target)
	return nil
}

func (r *runner) showGoal(c *cli.Context) error {
	s, err := r.openDay(c)
	if err != nil {
		return err
	}
	defer s.close()

	st := s.calc.State()
	if c.Bool("json") {
		return r.writeJSON(st.Goal)
	}
	if !st.HasGoal() {
		fmt.Fprintf(r.out, "No goal set for %s\n", r.cal.FormatDay(st.Day))
		return nil
	}
	fmt.Fprintf(r.out, "Goal for %s: %d kcal\n", r.cal.FormatDay(st.Day), st.Goal.DailyTarget)
	return nil
}

func (r *runner) clearGoal(c *cli.Context) error {
	s, err := r.openDay(c)
	if err != nil {
		return err
	}
	defer s.close()

	day := r.cal.FormatDay(s.calc.State().Day)
	if !s.calc.State().HasGoal() {
		fmt.Fprintf(r.out, "No goal set for %s\n", day)
		return nil
	}
	if err := s.calc.DeleteGoal(c.Context); err != nil {
		return exitError(s.calc, err)
	}
	fmt.Fprintf(r.out, "Goal for %s cleared\n", day)
	return nil
}

// resolveID accepts a unique prefix of an entry ID on the loaded day.
// Anything else is passed through and fails in the calculator.
func resolveID(st service.State, arg string) string {
	match := ""
	for _, e := range st.Entries {
		if e.ID == arg {
			return arg
		}
		if strings.HasPrefix(e.ID, arg) {
			if match != "" {
				return arg
			}
			match = e.ID
		}
	}
	if match == "" {
		return arg
	}
	return match
}

func (r *runner) printDay(c *cli.Context, st service.State) error {
	if c.Bool("json") {
		return r.writeJSON(handler.NewDayView(st, r.cal))
	}

	fmt.Fprintln(r.out, r.cal.FormatDay(st.Day))
	if st.IsEmpty() {
		fmt.Fprintln(r.out, "  No entries.")
	}
	for _, e := range st.Entries {
		fmt.Fprintf(r.out, "  %s  %s  %-24s %5d kcal\n",
			e.ID, r.cal.In(e.Timestamp).Format("15:04"), e.Name, e.Calories)
	}

	fmt.Fprintf(r.out, "Total: %d kcal", st.TotalCalories())
	switch {
	case !st.HasGoal():
	case st.IsGoalExceeded():
		fmt.Fprintf(r.out, " of %d, exceeded by %d", st.Goal.DailyTarget, st.TotalCalories()-st.Goal.DailyTarget)
	default:
		fmt.Fprintf(r.out, " of %d (%.0f%%), %d remaining",
			st.Goal.DailyTarget, st.GoalProgress()*100, st.RemainingCalories())
	}
	fmt.Fprintln(r.out)
	return nil
}

func (r *runner) writeJSON(v any) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
