package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Adapter types select the database driver of the PostgreSQL engine, or the in-memory engine.
const (
	AdapterPGXPool = "pgx.pool"
	AdapterSQLDB   = "sql.db"
	AdapterSQLXDB  = "sqlx.db"
	AdapterMemory  = "memory"
)

const (
	envHTTPAddr             = "LIBRARY_HTTP_ADDR"
	envAdapterType          = "LIBRARY_ADAPTER_TYPE"
	envObservabilityEnabled = "LIBRARY_OBSERVABILITY_ENABLED"
	envOTLPEndpoint         = "LIBRARY_OTLP_ENDPOINT"
	envOverdueSchedule      = "LIBRARY_OVERDUE_REPORT_SCHEDULE"
	envLogLevel             = "LIBRARY_LOG_LEVEL"
	envCreateSchema         = "LIBRARY_CREATE_SCHEMA"

	defaultHTTPAddr        = ":3000"
	defaultOTLPEndpoint    = "localhost:4317"
	defaultOverdueSchedule = "0 8 * * *"
)

// AppConfig holds the settings of the library server.
type AppConfig struct {
	HTTPAddr              string
	AdapterType           string
	PostgresDSN           string
	PostgresReplicaDSN    string
	ObservabilityEnabled  bool
	OTLPEndpoint          string
	OverdueReportSchedule string
	LogLevel              slog.Level
	CreateSchema          bool
}

// AppConfigFromEnv reads AppConfig from the environment, falling back to defaults for unset variables.
func AppConfigFromEnv() (AppConfig, error) {
	cfg := AppConfig{
		HTTPAddr:              envOrDefault(envHTTPAddr, defaultHTTPAddr),
		AdapterType:           strings.ToLower(envOrDefault(envAdapterType, AdapterPGXPool)),
		PostgresDSN:           PostgresDSN(),
		PostgresReplicaDSN:    PostgresReplicaDSN(),
		OTLPEndpoint:          envOrDefault(envOTLPEndpoint, defaultOTLPEndpoint),
		OverdueReportSchedule: envOrDefault(envOverdueSchedule, defaultOverdueSchedule),
		LogLevel:              slog.LevelInfo,
		CreateSchema:          true,
	}

	var err error

	if cfg.ObservabilityEnabled, err = boolFromEnv(envObservabilityEnabled, false); err != nil {
		return AppConfig{}, err
	}

	if cfg.CreateSchema, err = boolFromEnv(envCreateSchema, true); err != nil {
		return AppConfig{}, err
	}

	if level, ok := os.LookupEnv(envLogLevel); ok && level != "" {
		if err = cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
			return AppConfig{}, fmt.Errorf("invalid %s: %w", envLogLevel, err)
		}
	}

	return cfg, cfg.Validate()
}

// Validate checks the settings that have a closed set of values.
func (c AppConfig) Validate() error {
	switch c.AdapterType {
	case AdapterPGXPool, AdapterSQLDB, AdapterSQLXDB, AdapterMemory:
		return nil
	default:
		return fmt.Errorf("unsupported adapter type %q", c.AdapterType)
	}
}

func boolFromEnv(key string, fallback bool) (bool, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}

	return parsed, nil
}
