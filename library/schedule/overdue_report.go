package schedule

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/AntonStoeckl/library-lending-go/library/features/query/overduebooks"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
)

const (
	// DefaultRunTimeout bounds a single report run.
	DefaultRunTimeout = 30 * time.Second

	logMsgReportStarted  = "overdue report started"
	logMsgReportFinished = "overdue report finished"
	logMsgReportFailed   = "overdue report failed"
	logMsgBookOverdue    = "book overdue"
	logMsgScheduled      = "overdue report scheduled"

	logAttrOverdueCount = "overdue_count"
	logAttrDaysBorrowed = "days_borrowed"
	logAttrDueDate      = "due_date"
	logAttrTitle        = "title"
	logAttrSchedule     = "schedule"
)

var (
	// ErrAlreadyStarted is returned when Start is called on a running reporter.
	ErrAlreadyStarted = errors.New("overdue report is already scheduled")

	// ErrNilQueryHandler is returned when the reporter is created without a query handler.
	ErrNilQueryHandler = errors.New("overdue query handler must not be nil")
)

// OverdueQueryHandler is the query the report is built from.
type OverdueQueryHandler interface {
	Handle(ctx context.Context, query overduebooks.Query) (overduebooks.OverdueBooks, error)
}

// OverdueReporter logs overdue loans, once on demand or on a cron schedule.
type OverdueReporter struct {
	handler          OverdueQueryHandler
	clock            shell.Clock
	logger           shell.Logger
	contextualLogger shell.ContextualLogger
	runTimeout       time.Duration

	mu      sync.Mutex
	cron    *cron.Cron
	baseCtx context.Context
}

// Option defines a functional option for configuring OverdueReporter.
type Option func(*OverdueReporter) error

// WithClock sets the clock that decides "today" for each run.
func WithClock(clock shell.Clock) Option {
	return func(r *OverdueReporter) error {
		r.clock = clock
		return nil
	}
}

// WithLogger sets the logger the report is written to.
func WithLogger(logger shell.Logger) Option {
	return func(r *OverdueReporter) error {
		r.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger the report is written to.
func WithContextualLogger(logger shell.ContextualLogger) Option {
	return func(r *OverdueReporter) error {
		r.contextualLogger = logger
		return nil
	}
}

// WithRunTimeout bounds a single report run.
func WithRunTimeout(timeout time.Duration) Option {
	return func(r *OverdueReporter) error {
		if timeout <= 0 {
			return errors.New("run timeout must be positive")
		}

		r.runTimeout = timeout

		return nil
	}
}

// NewOverdueReporter creates an OverdueReporter.
func NewOverdueReporter(handler OverdueQueryHandler, options ...Option) (*OverdueReporter, error) {
	if handler == nil {
		return nil, ErrNilQueryHandler
	}

	reporter := &OverdueReporter{
		handler:    handler,
		clock:      shell.SystemClock,
		runTimeout: DefaultRunTimeout,
	}

	for _, option := range options {
		if err := option(reporter); err != nil {
			return nil, err
		}
	}

	return reporter, nil
}

// Report runs the overdue query once and logs the result.
func (r *OverdueReporter) Report(ctx context.Context) (overduebooks.OverdueBooks, error) {
	ctx, cancel := context.WithTimeout(ctx, r.runTimeout)
	defer cancel()

	r.log(ctx, levelInfo, logMsgReportStarted)

	overdue, err := r.handler.Handle(ctx, overduebooks.BuildQuery(r.clock()))
	if err != nil {
		r.log(ctx, levelError, logMsgReportFailed, shell.LogAttrError, err.Error())
		return overduebooks.OverdueBooks{}, err
	}

	for _, loan := range overdue.Loans {
		r.log(ctx, levelWarn, logMsgBookOverdue,
			shell.LogAttrBookID, loan.BookID.String(),
			logAttrTitle, loan.Title,
			shell.LogAttrReaderPhone, loan.ReaderPhone,
			logAttrDaysBorrowed, loan.DaysBorrowed,
			logAttrDueDate, core.FormatDate(loan.DueDate))
	}

	r.log(ctx, levelInfo, logMsgReportFinished, logAttrOverdueCount, overdue.Count)

	return overdue, nil
}

// Start schedules Report with a standard five field cron expression, e.g. "0 8 * * *".
// Runs use ctx as their parent until Stop is called.
func (r *OverdueReporter) Start(ctx context.Context, schedule string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cron != nil {
		return ErrAlreadyStarted
	}

	scheduler := cron.New(
		cron.WithLogger(cronLogger{logger: r.logger}),
		cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger: r.logger})),
	)

	if _, err := scheduler.AddFunc(schedule, r.runScheduled); err != nil {
		return err
	}

	r.baseCtx = ctx
	r.cron = scheduler
	scheduler.Start()

	r.log(ctx, levelInfo, logMsgScheduled, logAttrSchedule, schedule)

	return nil
}

// Stop stops the schedule and waits for a running report, at most until ctx is done.
func (r *OverdueReporter) Stop(ctx context.Context) error {
	r.mu.Lock()
	scheduler := r.cron
	r.cron = nil
	r.mu.Unlock()

	if scheduler == nil {
		return nil
	}

	select {
	case <-scheduler.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *OverdueReporter) runScheduled() {
	r.mu.Lock()
	ctx := r.baseCtx
	r.mu.Unlock()

	// The error is logged by Report.
	_, _ = r.Report(ctx)
}

type level int

const (
	levelInfo level = iota
	levelWarn
	levelError
)

func (r *OverdueReporter) log(ctx context.Context, lvl level, msg string, args ...any) {
	if r.contextualLogger != nil {
		switch lvl {
		case levelInfo:
			r.contextualLogger.InfoContext(ctx, msg, args...)
		case levelWarn:
			r.contextualLogger.WarnContext(ctx, msg, args...)
		case levelError:
			r.contextualLogger.ErrorContext(ctx, msg, args...)
		}
	}

	if r.logger != nil {
		switch lvl {
		case levelInfo:
			r.logger.Info(msg, args...)
		case levelWarn:
			r.logger.Warn(msg, args...)
		case levelError:
			r.logger.Error(msg, args...)
		}
	}
}

// cronLogger adapts shell.Logger to cron.Logger.
type cronLogger struct {
	logger shell.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	if l.logger != nil {
		l.logger.Debug(msg, keysAndValues...)
	}
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	if l.logger != nil {
		l.logger.Error(msg, append(keysAndValues, shell.LogAttrError, err.Error())...)
	}
}
