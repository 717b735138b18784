package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sentinel-security/sentinel-console/internal/api"
	"github.com/sentinel-security/sentinel-console/internal/config"
	"github.com/sentinel-security/sentinel-console/internal/database"
	"github.com/sentinel-security/sentinel-console/internal/domain"
	"github.com/sentinel-security/sentinel-console/internal/evidence"
	"github.com/sentinel-security/sentinel-console/internal/notify"
	"github.com/sentinel-security/sentinel-console/internal/roster"
	"github.com/sentinel-security/sentinel-console/internal/storage"
	"github.com/sentinel-security/sentinel-console/internal/store"
	"github.com/sentinel-security/sentinel-console/internal/stream"
	"github.com/sentinel-security/sentinel-console/internal/ws"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	logger.Info("starting Sentinel Console API",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.Port),
		slog.Bool("live", cfg.Live()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		alertStore    store.AlertStore
		employeeStore store.EmployeeStore
		ready         func(ctx context.Context) error
	)

	if cfg.Live() {
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		alertStore = store.NewPostgresAlertStore(pool, logger)
		employeeStore = store.NewPostgresEmployeeStore(pool, logger)
		ready = func(ctx context.Context) error {
			return database.HealthCheck(ctx, pool)
		}
	} else {
		logger.Warn("backing infrastructure not configured, running in demo mode")
	}

	resolver := storage.NewResolver(cfg.StorageBaseURL)
	consumer := stream.NewConsumer(alertStore, resolver, cfg.AlertsBucket, logger)
	employees := roster.NewSync(employeeStore, resolver, cfg.EmployeesBucket, logger)

	hub := ws.NewHub()

	// Every snapshot fans out to all connected dashboards; popup events are
	// per-session and flow through each client's own controller.
	consumer.OnUpdate(func(alerts []domain.Alert, unread int) {
		hub.Broadcast(ws.EventAlertsUpdated, ws.AlertsPayload{
			Alerts:      alerts,
			UnreadCount: unread,
		})
	})
	employees.OnUpdate(func(list []domain.Employee) {
		hub.Broadcast(ws.EventRosterUpdated, ws.RosterPayload{Employees: list})
	})

	go hub.Run(ctx)
	go func() {
		if err := consumer.Run(ctx); err != nil {
			logger.Error("alert stream stopped", slog.Any("error", err))
		}
	}()
	go func() {
		if err := employees.Run(ctx); err != nil {
			logger.Error("roster sync stopped", slog.Any("error", err))
		}
	}()

	report := evidence.NewReport(cfg.CompanyName, cfg.MonitoringZone, evidence.NewHTTPFetcher())
	sound := notify.NewAssetSound(cfg.AlertSoundURL)

	router := api.NewRouter(logger, &api.Dependencies{
		Consumer: consumer,
		Roster:   employees,
		Hub:      hub,
		Report:   report,
		Sound:    sound,
		Ready:    ready,
	})
	router.Setup()

	errChan := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info("server listening", slog.String("addr", addr))
		if err := router.Listen(addr); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down server...")
	if err := router.Shutdown(); err != nil {
		logger.Error("shutdown error", slog.Any("error", err))
	}

	<-shutdownCtx.Done()
	logger.Info("server stopped")

	return nil
}
