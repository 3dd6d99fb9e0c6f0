// Package server wires the calculator API together and runs it.
//
// COMPOSITION ROOT:
//
//	config → sqlite.DB → FoodRepo / GoalRepo → service.Calculator → handler
//
// Every dependency is built in New; nothing else in the tree constructs a
// store or a repository for the HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/calorie-calculator/internal/config"
	"github.com/sakif/calorie-calculator/internal/duplicate"
	"github.com/sakif/calorie-calculator/internal/handler"
	"github.com/sakif/calorie-calculator/internal/middleware"
	"github.com/sakif/calorie-calculator/internal/repository"
	"github.com/sakif/calorie-calculator/internal/service"
	"github.com/sakif/calorie-calculator/internal/store/sqlite"
	"github.com/sakif/calorie-calculator/internal/validation"
)

// Server owns the router and the database; Start closes the database when
// the server stops.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	db     *sqlite.DB
}

func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	if cfg.DBPath != sqlite.MemoryPath {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	cal := cfg.Calendar()
	db, err := sqlite.New(cfg.DBPath, cal)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	calc := service.NewCalculator(
		repository.NewFoodRepo(db),
		repository.NewGoalRepo(db.Goals()),
		validation.NewValidator(),
		duplicate.NewChecker(),
		logger,
		service.WithLanguage(cfg.Lang),
	)

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}
	s.setupRoutes(handler.NewCalculatorHandler(calc, cal, cfg.Lang, logger))
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the database. Start calls it on the way out.
func (s *Server) Close() error {
	return s.db.Close()
}

// setupRoutes mounts middleware and the API.
//
// Order: request id, real ip, recoverer, request log, rate limit. RealIP
// has to run before the rate limiter so the limiter keys on the client.
func (s *Server) setupRoutes(h *handler.CalculatorHandler) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(middleware.RateLimit(s.config.RateLimitRPS, s.config.RateLimitBurst))

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	s.router.Route("/api", h.Routes)
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	defer s.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("database", s.config.DBPath),
			slog.String("timezone", s.config.Location.String()),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
