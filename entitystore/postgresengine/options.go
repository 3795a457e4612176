package postgresengine

import "github.com/AntonStoeckl/library-lending-go/entitystore"

// Option defines a functional option for configuring Store.
type Option func(*Store) error

// WithBooksTableName sets the books table name for the Store.
func WithBooksTableName(tableName string) Option {
	return func(s *Store) error {
		if tableName == "" {
			return entitystore.ErrEmptyBooksTableName
		}

		s.booksTableName = tableName

		return nil
	}
}

// WithReadersTableName sets the readers table name for the Store.
func WithReadersTableName(tableName string) Option {
	return func(s *Store) error {
		if tableName == "" {
			return entitystore.ErrEmptyReadersTableName
		}

		s.readersTableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the Store.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL statements with execution timing (development use)
// Info level: operation outcomes like lost lending races (production-safe)
// Error level: failures that cause operation failures.
func WithLogger(logger entitystore.Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Store.
// Log records then carry the trace and span IDs of the active span.
func WithContextualLogger(logger entitystore.ContextualLogger) Option {
	return func(s *Store) error {
		s.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Store.
func WithMetrics(collector entitystore.MetricsCollector) Option {
	return func(s *Store) error {
		s.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Store.
// Every store operation is wrapped in a span named after the operation.
func WithTracing(collector entitystore.TracingCollector) Option {
	return func(s *Store) error {
		s.tracingCollector = collector
		return nil
	}
}
