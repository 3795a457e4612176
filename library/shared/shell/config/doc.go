// Package config provides the configuration of the library application:
// PostgreSQL connection factories for the pgx pool, database/sql and sqlx drivers with pool tuning,
// OpenTelemetry providers exporting via OTLP gRPC, and the application settings read from the environment.
package config
