// Command calories logs food and calorie goals from the terminal.
//
//	calories add Apple 52
//	calories add --replace "Apple 80"
//	calories list --date 2026-10-13
//	calories goal set 2000
//
// It runs the same calculator as the API server against the same database.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v2"

	"github.com/sakif/calorie-calculator/internal/calendar"
	"github.com/sakif/calorie-calculator/internal/config"
	"github.com/sakif/calorie-calculator/internal/store"
	"github.com/sakif/calorie-calculator/internal/store/memory"
	"github.com/sakif/calorie-calculator/internal/store/sqlite"
)

const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitUsageError   = 2
	ExitDataError    = 3
)

// memoryDB as --db value keeps everything in process memory.
const memoryDB = "memory"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitUsageError)
	}

	app := newApp(cfg, os.Stdout, openBackend, time.Now)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitGeneralError)
	}
}

// backend is an opened pair of stores and the function that releases them.
type backend struct {
	foods store.FoodStore
	goals store.GoalStore
	close func() error
}

type opener func(dbPath string, cal calendar.Calendar) (*backend, error)

func openBackend(dbPath string, cal calendar.Calendar) (*backend, error) {
	if dbPath == memoryDB {
		return &backend{
			foods: memory.NewFoodStore(cal, 0),
			goals: memory.NewGoalStore(cal),
			close: func() error { return nil },
		}, nil
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	db, err := sqlite.New(dbPath, cal)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &backend{foods: db, goals: db.Goals(), close: db.Close}, nil
}

func newApp(cfg config.Config, out io.Writer, open opener, now func() time.Time) *cli.App {
	r := &runner{
		cfg:    cfg,
		cal:    cfg.Calendar(),
		out:    out,
		open:   open,
		now:    now,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	dateFlag := &cli.StringFlag{
		Name:    "date",
		Aliases: []string{"D"},
		Usage:   "Day to work on, YYYY-MM-DD (default: today)",
	}
	jsonFlag := &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the day as JSON",
	}

	return &cli.App{
		Name:    "calories",
		Usage:   "A daily calorie log",
		Version: "0.1.0",
		Writer:  out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Value:   cfg.DBPath,
				Usage:   `Database file path, or "memory"`,
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log to stderr at LOG_LEVEL",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("verbose") {
				r.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Log food for today",
				ArgsUsage: "<name calories>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "anyway", Aliases: []string{"a"}, Usage: "If the name is already logged today, add it again"},
					&cli.BoolFlag{Name: "replace", Aliases: []string{"r"}, Usage: "If the name is already logged today, replace that entry"},
					jsonFlag,
				},
				Action: r.add,
			},
			{
				Name:   "list",
				Usage:  "Show a day's entries and goal",
				Flags:  []cli.Flag{dateFlag, jsonFlag},
				Action: r.list,
			},
			{
				Name:      "edit",
				Usage:     "Re-enter an entry",
				ArgsUsage: "<entry-id> <name calories>",
				Flags:     []cli.Flag{dateFlag, jsonFlag},
				Action:    r.edit,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Remove an entry",
				ArgsUsage: "<entry-id>",
				Flags:     []cli.Flag{dateFlag},
				Action:    r.delete,
			},
			{
				Name:  "goal",
				Usage: "Manage the daily calorie goal",
				Subcommands: []*cli.Command{
					{
						Name:      "set",
						Usage:     "Set the goal for a day",
						ArgsUsage: "<calories>",
						Flags:     []cli.Flag{dateFlag},
						Action:    r.setGoal,
					},
					{
						Name:   "show",
						Usage:  "Show the goal for a day",
						Flags:  []cli.Flag{dateFlag, jsonFlag},
						Action: r.showGoal,
					},
					{
						Name:    "clear",
						Aliases: []string{"rm"},
						Usage:   "Remove the goal for a day",
						Flags:   []cli.Flag{dateFlag},
						Action:  r.clearGoal,
					},
				},
			},
		},
	}
}
