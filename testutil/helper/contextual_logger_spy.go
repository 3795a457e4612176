package helper

import (
	"context"
	"sync"
)

// ContextualLoggerSpy captures calls to the contextual logging contract.
type ContextualLoggerSpy struct {
	records     []ContextualLogRecord
	mu          sync.Mutex
	recordCalls bool
}

// ContextualLogRecord represents a recorded contextual log call.
type ContextualLogRecord struct {
	Level   string
	Message string
	Args    []any
	Context context.Context
}

// NewContextualLoggerSpy creates a new ContextualLoggerSpy.
func NewContextualLoggerSpy(recordCalls bool) *ContextualLoggerSpy {
	return &ContextualLoggerSpy{recordCalls: recordCalls}
}

// DebugContext implements entitystore.ContextualLogger.
func (l *ContextualLoggerSpy) DebugContext(ctx context.Context, msg string, args ...any) {
	l.record(ctx, "debug", msg, args)
}

// InfoContext implements entitystore.ContextualLogger.
func (l *ContextualLoggerSpy) InfoContext(ctx context.Context, msg string, args ...any) {
	l.record(ctx, "info", msg, args)
}

// WarnContext implements entitystore.ContextualLogger.
func (l *ContextualLoggerSpy) WarnContext(ctx context.Context, msg string, args ...any) {
	l.record(ctx, "warn", msg, args)
}

// ErrorContext implements entitystore.ContextualLogger.
func (l *ContextualLoggerSpy) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.record(ctx, "error", msg, args)
}

func (l *ContextualLoggerSpy) record(ctx context.Context, level, msg string, args []any) {
	if !l.recordCalls {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, ContextualLogRecord{Level: level, Message: msg, Args: args, Context: ctx})
}

// GetRecords returns a copy of all captured records.
func (l *ContextualLoggerSpy) GetRecords() []ContextualLogRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]ContextualLogRecord(nil), l.records...)
}

// HasDebugLog checks for a debug record with the message.
func (l *ContextualLoggerSpy) HasDebugLog(msg string) bool {
	return l.hasLog("debug", msg)
}

// HasInfoLog checks for an info record with the message.
func (l *ContextualLoggerSpy) HasInfoLog(msg string) bool {
	return l.hasLog("info", msg)
}

// HasWarnLog checks for a warn record with the message.
func (l *ContextualLoggerSpy) HasWarnLog(msg string) bool {
	return l.hasLog("warn", msg)
}

// HasErrorLog checks for an error record with the message.
func (l *ContextualLoggerSpy) HasErrorLog(msg string) bool {
	return l.hasLog("error", msg)
}

func (l *ContextualLoggerSpy) hasLog(level, msg string) bool {
	for _, record := range l.GetRecords() {
		if record.Level == level && record.Message == msg {
			return true
		}
	}

	return false
}
