// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/event-planner/internal/config"
	"github.com/Shivanand-hulikatti/event-planner/internal/database"
	"github.com/Shivanand-hulikatti/event-planner/internal/handler"
	"github.com/Shivanand-hulikatti/event-planner/internal/logger"
	"github.com/Shivanand-hulikatti/event-planner/internal/repository"
	"github.com/Shivanand-hulikatti/event-planner/internal/scheduler"
	"github.com/Shivanand-hulikatti/event-planner/internal/service"
	"github.com/Shivanand-hulikatti/event-planner/internal/summary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		ServiceName: cfg.App.Name,
		Development: cfg.Log.Development || cfg.IsDevelopment(),
	})
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── 1. Connect to PostgreSQL ──────────────────────────────────────────
	pool, err := database.NewPool(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	log.Info("connected to PostgreSQL", zap.String("host", cfg.Database.Host), zap.String("db", cfg.Database.DBName))

	// ── 2. Wire up layers ────────────────────────────────────────────────
	eventRepo := repository.NewEventRepository(pool)
	attendeeRepo := repository.NewAttendeeRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)
	addOnRepo := repository.NewAddOnRepository(pool)
	accommodationRepo := repository.NewAccommodationRepository(pool)
	summaryRepo := repository.NewSummaryRepository(pool)

	gate := summary.NewGate(cfg.Summary.LeadTimeDays, cfg.Summary.Location)
	summarySvc := service.NewSummaryService(service.Sources{
		Events:    eventRepo,
		Attendees: attendeeRepo,
		Payments:  paymentRepo,
		AddOns:    addOnRepo,
		Bookings:  accommodationRepo,
	}, summaryRepo, gate, summary.SystemClock{}, log.Named("summary"))
	eventSvc := service.NewEventService(eventRepo, attendeeRepo, paymentRepo, addOnRepo, accommodationRepo)

	// ── 3. Background sweep ──────────────────────────────────────────────
	sweeper := scheduler.New(summarySvc, cfg.Summary.SweepInterval, log)
	sweeper.Start(ctx)
	defer sweeper.Stop()

	// ── 4. Build the router ───────────────────────────────────────────────
	router := handler.NewRouter(
		handler.NewEventHandler(eventSvc, log),
		handler.NewSummaryHandler(summarySvc, log),
		pool,
		log.Named("http"),
		cfg.Server.WriteTimeout,
	)

	// ── 5. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Block until SIGINT/SIGTERM or a listener failure.
	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
