// Command server runs the library lending HTTP API.
//
// Settings come from LIBRARY_* environment variables and can be overridden with flags, see -help.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AntonStoeckl/library-lending-go/library/app"
	"github.com/AntonStoeckl/library-lending-go/library/features/query/overduebooks"
	"github.com/AntonStoeckl/library-lending-go/library/httpapi"
	"github.com/AntonStoeckl/library-lending-go/library/schedule"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell/config"
)

const (
	serviceName     = "library-lending"
	serviceVersion  = "1.0.0"
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("library server failed: %v", err)
	}
}

func run() error {
	cfg, err := parseFlags()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	obs, shutdownObservability, err := initializeObservability(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer shutdownObservability()

	store, closeStore, err := initializeStore(ctx, cfg, obs)
	if err != nil {
		return fmt.Errorf("failed to initialize entity store: %w", err)
	}
	defer closeStore()

	handlers, err := app.NewHandlers(store, obs)
	if err != nil {
		return fmt.Errorf("failed to create handlers: %w", err)
	}

	api, err := httpapi.NewAPI(handlers, store, httpapi.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create API: %w", err)
	}

	reporter, err := schedule.NewOverdueReporter(
		overduebooks.NewQueryHandler(store),
		schedule.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to create overdue report: %w", err)
	}

	if err = reporter.Start(ctx, cfg.OverdueReportSchedule); err != nil {
		return fmt.Errorf("failed to schedule overdue report: %w", err)
	}

	e := api.NewEcho()
	serverDone := make(chan error, 1)

	go func() {
		serverDone <- e.Start(cfg.HTTPAddr)
	}()

	logger.Info("library server started",
		"addr", cfg.HTTPAddr,
		"adapter", cfg.AdapterType,
		"observability", cfg.ObservabilityEnabled)

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received, shutting down gracefully")
	case err = <-serverDone:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return errors.Join(
		e.Shutdown(shutdownCtx),
		reporter.Stop(shutdownCtx),
	)
}

func parseFlags() (config.AppConfig, error) {
	cfg, err := config.AppConfigFromEnv()
	if err != nil {
		return config.AppConfig{}, err
	}

	flag.StringVar(&cfg.HTTPAddr, "addr", cfg.HTTPAddr, "HTTP listen address")
	flag.StringVar(&cfg.AdapterType, "adapter", cfg.AdapterType, "Entity store: pgx.pool, sql.db, sqlx.db or memory")
	flag.StringVar(&cfg.PostgresDSN, "dsn", cfg.PostgresDSN, "PostgreSQL connection string")
	flag.StringVar(&cfg.PostgresReplicaDSN, "replica-dsn", cfg.PostgresReplicaDSN, "Optional read replica connection string (pgx.pool only)")
	flag.BoolVar(&cfg.ObservabilityEnabled, "observability-enabled", cfg.ObservabilityEnabled, "Export traces and metrics via OTLP")
	flag.StringVar(&cfg.OTLPEndpoint, "otlp-endpoint", cfg.OTLPEndpoint, "OTLP gRPC endpoint")
	flag.StringVar(&cfg.OverdueReportSchedule, "overdue-report-schedule", cfg.OverdueReportSchedule, "Cron expression of the overdue report")
	flag.BoolVar(&cfg.CreateSchema, "create-schema", cfg.CreateSchema, "Create tables and indexes on startup")
	flag.TextVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")

	flag.Parse()

	return cfg, cfg.Validate()
}
