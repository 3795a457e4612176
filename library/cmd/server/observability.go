package main

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"

	"github.com/AntonStoeckl/library-lending-go/entitystore/oteladapters"
	"github.com/AntonStoeckl/library-lending-go/library/app"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell/config"
)

// initializeObservability returns the plain logger only, unless OTLP export is enabled.
func initializeObservability(ctx context.Context, cfg config.AppConfig, logger *slog.Logger) (app.Observability, func(), error) {
	if !cfg.ObservabilityEnabled {
		return app.Observability{Logger: logger}, func() {}, nil
	}

	providers, err := config.NewObservabilityConfig(ctx, serviceName, serviceVersion, cfg.OTLPEndpoint)
	if err != nil {
		return app.Observability{}, nil, err
	}

	shutdown := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Error("observability shutdown failed", "error", err.Error())
		}
	}

	obs := app.Observability{
		ContextualLogger: oteladapters.NewSlogBridgeLogger(serviceName),
		Metrics:          oteladapters.NewMetricsCollector(otel.Meter(serviceName)),
		Tracing:          oteladapters.NewTracingCollector(otel.Tracer(serviceName)),
	}

	logger.Info("observability enabled", "otlp_endpoint", cfg.OTLPEndpoint)

	return obs, shutdown, nil
}
