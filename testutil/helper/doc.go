// Package helper provides test doubles and fixtures shared by the test suites:
// spies for the logging, metrics and tracing contracts, a slog handler spy, and book and reader fixtures.
package helper
