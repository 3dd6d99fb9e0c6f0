// Package main is the entry point for the calorie calculator API server.
//
// The main package only reads configuration, builds the logger and hands
// both to internal/server. Everything else lives in internal/.
package main

import (
	"log/slog"
	"os"

	// Loads .env into the process environment before main runs.
	_ "github.com/joho/godotenv/autoload"

	"github.com/sakif/calorie-calculator/internal/config"
	"github.com/sakif/calorie-calculator/internal/server"
)

func main() {
	// === 1. READ CONFIGURATION ===
	// Every setting comes from the environment (or .env). See internal/config
	// for the variable names and defaults.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// === 2. SET UP LOGGING ===
	// LOG_LEVEL=debug also shows the goal fetch failures that the calculator
	// swallows while loading a day.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// === 3. CREATE AND START THE SERVER ===
	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until Ctrl+C or SIGTERM.
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
