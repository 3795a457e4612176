package removebook

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/entitystore"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
)

const (
	// OutcomeRemovedWhileOnLoan is the business outcome of removing a book that was lent to a reader.
	OutcomeRemovedWhileOnLoan = "removed_while_on_loan"

	logMsgRemovedWhileOnLoan = "book removed while on loan"
)

// Store defines the entity store operations needed by the CommandHandler.
type Store interface {
	FindBook(ctx context.Context, id uuid.UUID) (entitystore.CatalogEntry, bool, error)
	DeleteBook(ctx context.Context, id uuid.UUID) (deleted bool, wasBorrowed bool, err error)
}

// Result reports the removed book and whether it was lent to a reader at that moment.
type Result struct {
	BookID    uuid.UUID
	WasOnLoan bool
}

// BusinessOutcome implements shell.ReportsBusinessOutcome.
func (r Result) BusinessOutcome() string {
	if r.WasOnLoan {
		return OutcomeRemovedWhileOnLoan
	}

	return shell.StatusSuccess
}

// CommandHandler removes books.
type CommandHandler struct {
	store            Store
	logger           shell.Logger
	contextualLogger shell.ContextualLogger
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithLogger sets the logger for the warning about books removed while on loan.
func WithLogger(logger shell.Logger) Option {
	return func(h *CommandHandler) {
		h.logger = logger
	}
}

// WithContextualLogger sets the contextual logger for the warning about books removed while on loan.
func WithContextualLogger(logger shell.ContextualLogger) Option {
	return func(h *CommandHandler) {
		h.contextualLogger = logger
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store Store, opts ...Option) CommandHandler {
	handler := CommandHandler{store: store}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the workflow: Load -> Delete -> (Warn about lost loan).
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	ctx = entitystore.WithStrongConsistency(ctx)

	entry, found, err := h.store.FindBook(ctx, command.BookID)
	if err != nil {
		return Result{}, shell.StoreFailure(err)
	}

	if !found {
		return Result{}, core.NewBookNotFoundError(command.BookID.String())
	}

	deleted, wasBorrowed, err := h.store.DeleteBook(ctx, command.BookID)
	if err != nil {
		return Result{}, shell.StoreFailure(err)
	}

	if !deleted {
		return Result{}, core.NewBookNotFoundError(command.BookID.String())
	}

	if wasBorrowed {
		borrowerPhone := ""
		if entry.BorrowerPhone != nil {
			borrowerPhone = *entry.BorrowerPhone
		}

		shell.LogWarning(ctx, h.logger, h.contextualLogger, logMsgRemovedWhileOnLoan,
			shell.LogAttrBookID, command.BookID.String(),
			shell.LogAttrReaderPhone, borrowerPhone)
	}

	return Result{BookID: command.BookID, WasOnLoan: wasBorrowed}, nil
}
