// Package config reads the calculator's settings from the environment.
//
// Both binaries load a .env file first (godotenv/autoload), so every value
// below can also live there. A value that is set but cannot be parsed is an
// error naming the variable; an unset value takes its default.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sakif/calorie-calculator/internal/calendar"
	"github.com/sakif/calorie-calculator/internal/validation"
)

const (
	DefaultDBPath       = "data/calories.db"
	DefaultPort         = 8080
	DefaultRateLimitRPS = 20
)

type Config struct {
	DBPath   string          // CALORIES_DB_PATH
	Port     int             // PORT
	LogLevel slog.Level      // LOG_LEVEL: debug|info|warn|error
	Location *time.Location  // CALORIES_TZ, IANA name; day boundaries
	Lang     validation.Lang // CALORIES_LANG: en|ru

	RateLimitRPS   float64 // RATE_LIMIT_RPS, 0 disables
	RateLimitBurst int     // RATE_LIMIT_BURST, 0 means same as RPS
}

// Calendar returns the calendar for the configured zone.
func (c Config) Calendar() calendar.Calendar {
	return calendar.New(c.Location)
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	return load(os.Getenv)
}

// load does the work of Load against any lookup function, so tests do not
// have to touch the process environment.
func load(getenv func(string) string) (Config, error) {
	cfg := Config{
		DBPath:       DefaultDBPath,
		Port:         DefaultPort,
		LogLevel:     slog.LevelInfo,
		Location:     time.Local,
		Lang:         validation.LangEnglish,
		RateLimitRPS: DefaultRateLimitRPS,
	}

	if v := strings.TrimSpace(getenv("CALORIES_DB_PATH")); v != "" {
		cfg.DBPath = v
	}

	if v := strings.TrimSpace(getenv("PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, fmt.Errorf("config: PORT=%q is not a valid port", v)
		}
		cfg.Port = port
	}

	if v := strings.TrimSpace(getenv("LOG_LEVEL")); v != "" {
		level, err := ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = level
	}

	if v := strings.TrimSpace(getenv("CALORIES_TZ")); v != "" {
		loc, err := time.LoadLocation(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: CALORIES_TZ: %w", err)
		}
		cfg.Location = loc
	}

	if v := strings.ToLower(strings.TrimSpace(getenv("CALORIES_LANG"))); v != "" {
		switch lang := validation.Lang(v); lang {
		case validation.LangEnglish, validation.LangRussian:
			cfg.Lang = lang
		default:
			return Config{}, fmt.Errorf("config: CALORIES_LANG=%q, want en or ru", v)
		}
	}

	if v := strings.TrimSpace(getenv("RATE_LIMIT_RPS")); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil || rps < 0 {
			return Config{}, fmt.Errorf("config: RATE_LIMIT_RPS=%q is not a non-negative number", v)
		}
		cfg.RateLimitRPS = rps
	}

	if v := strings.TrimSpace(getenv("RATE_LIMIT_BURST")); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil || burst < 0 {
			return Config{}, fmt.Errorf("config: RATE_LIMIT_BURST=%q is not a non-negative integer", v)
		}
		cfg.RateLimitBurst = burst
	}

	return cfg, nil
}

// ParseLevel maps debug, info, warn and error (any case) to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown level %q", s)
}
