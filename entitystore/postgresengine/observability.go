package postgresengine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/AntonStoeckl/library-lending-go/entitystore"
)

const (
	metricOperationDuration = "entitystore_operation_duration_seconds"
	metricRowsAffected      = "entitystore_rows_affected"
	metricDatabaseErrors    = "entitystore_database_errors_total"
	metricGuardRejections   = "entitystore_guard_rejections_total"
	spanNamePrefix          = "entitystore."
	spanAttrOperation       = "operation"
	spanAttrErrorType       = "error_type"
	spanAttrDurationMS      = "duration_ms"
	spanAttrRowsAffected    = "rows_affected"
	labelStatus             = "status"
	statusSuccess           = "success"
	statusError             = "error"
	logMsgSQLExecuted       = "executed sql for: "
	logMsgOperation         = "entitystore operation: "
	logAttrError            = "error"
	logAttrQuery            = "query"
	logAttrDurationMS       = "duration_ms"
	logAttrOperation        = "operation"
)

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

func (s *Store) logQueryWithDuration(ctx context.Context, sqlQuery, operation string, duration time.Duration) {
	if s.logger != nil {
		s.logger.Debug(logMsgSQLExecuted+operation, logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery)
	}

	if s.contextualLogger != nil {
		s.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+operation, logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

func (s *Store) logOperation(ctx context.Context, operation string, args ...any) {
	if s.logger != nil {
		s.logger.Info(logMsgOperation+operation, args...)
	}

	if s.contextualLogger != nil {
		s.contextualLogger.InfoContext(ctx, logMsgOperation+operation, args...)
	}
}

func (s *Store) logError(ctx context.Context, message string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if s.logger != nil {
		s.logger.Error(message, allArgs...)
	}

	if s.contextualLogger != nil {
		s.contextualLogger.ErrorContext(ctx, message, allArgs...)
	}
}

func (s *Store) recordDuration(ctx context.Context, operation, status string, duration time.Duration) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: operation, labelStatus: status}

	if contextual, ok := s.metricsCollector.(entitystore.ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(ctx, metricOperationDuration, duration, labels)
		return
	}

	s.metricsCollector.RecordDuration(metricOperationDuration, duration, labels)
}

func (s *Store) recordRowsAffected(ctx context.Context, operation string, rowsAffected int64) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: operation, labelStatus: statusSuccess}

	if contextual, ok := s.metricsCollector.(entitystore.ContextualMetricsCollector); ok {
		contextual.RecordValueContext(ctx, metricRowsAffected, float64(rowsAffected), labels)
		return
	}

	s.metricsCollector.RecordValue(metricRowsAffected, float64(rowsAffected), labels)
}

func (s *Store) incrementCounter(ctx context.Context, metric string, labels map[string]string) {
	if s.metricsCollector == nil {
		return
	}

	if contextual, ok := s.metricsCollector.(entitystore.ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(ctx, metric, labels)
		return
	}

	s.metricsCollector.IncrementCounter(metric, labels)
}

// operationObserver wraps one store operation with a span, duration metrics, and logging.
type operationObserver struct {
	s         *Store
	ctx       context.Context
	operation string
	span      entitystore.SpanContext
	startedAt time.Time
}

func (s *Store) startOperation(ctx context.Context, operation string) (*operationObserver, context.Context) {
	var span entitystore.SpanContext

	if s.tracingCollector != nil {
		ctx, span = s.tracingCollector.StartSpan(ctx, spanNamePrefix+operation, map[string]string{
			spanAttrOperation: operation,
		})
	}

	return &operationObserver{
		s:         s,
		ctx:       ctx,
		operation: operation,
		span:      span,
		startedAt: time.Now(),
	}, ctx
}

func (o *operationObserver) elapsed() time.Duration {
	return time.Since(o.startedAt)
}

func (o *operationObserver) finishSpan(status string, attrs map[string]string) {
	if o.span == nil {
		return
	}

	o.span.SetStatus(status)
	for key, value := range attrs {
		o.span.AddAttribute(key, value)
	}

	o.s.tracingCollector.FinishSpan(o.span, status, attrs)
}

func (o *operationObserver) logQuery(sqlQuery string, duration time.Duration) {
	o.s.logQueryWithDuration(o.ctx, sqlQuery, o.operation, duration)
}

func (o *operationObserver) recordRowsAffected(rowsAffected int64) {
	o.s.recordRowsAffected(o.ctx, o.operation, rowsAffected)
}

// guardRejected records that a conditional statement matched no row.
func (o *operationObserver) guardRejected(args ...any) {
	o.s.incrementCounter(o.ctx, metricGuardRejections, map[string]string{spanAttrOperation: o.operation})
	o.s.logOperation(o.ctx, o.operation, append([]any{logAttrOperation, "guard rejected"}, args...)...)
}

func (o *operationObserver) finishSuccess() {
	duration := o.elapsed()
	o.s.recordDuration(o.ctx, o.operation, statusSuccess, duration)
	o.finishSpan(statusSuccess, map[string]string{
		spanAttrDurationMS: fmt.Sprintf("%.2f", toMilliseconds(duration)),
	})
}

// finishError logs and records a failed operation and returns err unchanged.
func (o *operationObserver) finishError(message, errorType string, err error) error {
	duration := o.elapsed()
	o.s.logError(o.ctx, message, err, logAttrOperation, o.operation)
	o.s.recordDuration(o.ctx, o.operation, statusError, duration)
	o.s.incrementCounter(o.ctx, metricDatabaseErrors, map[string]string{
		spanAttrOperation: o.operation,
		labelStatus:       statusError,
		spanAttrErrorType: errorType,
	})
	o.finishSpan(statusError, map[string]string{
		spanAttrErrorType:  errorType,
		spanAttrDurationMS: fmt.Sprintf("%.2f", toMilliseconds(duration)),
	})

	return err
}
