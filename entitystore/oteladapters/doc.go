// Package oteladapters implements the entitystore observability interfaces with OpenTelemetry.
//
// The same adapters serve the store engines and the handler decorators in library/shared/shell/observable:
//   - SlogBridgeLogger and OTelLogger for entitystore.ContextualLogger
//   - MetricsCollector for entitystore.ContextualMetricsCollector
//   - TracingCollector for entitystore.TracingCollector
package oteladapters
