package lendbook

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/entitystore"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
)

// Store defines the entity store operations needed by the CommandHandler.
type Store interface {
	FindReader(ctx context.Context, phone string) (entitystore.Reader, bool, error)
	LendBook(ctx context.Context, id uuid.UUID, phone string, borrowedOn time.Time) (bool, error)
}

// Result describes the started loan.
type Result struct {
	BookID       uuid.UUID
	ReaderPhone  string
	BorrowedDate time.Time
	DueDate      time.Time
}

// CommandHandler lends available books to registered readers.
type CommandHandler struct {
	store Store
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(store Store) CommandHandler {
	return CommandHandler{store: store}
}

// Handle executes the workflow: Check reader -> Conditional lend.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	ctx = entitystore.WithStrongConsistency(ctx)

	if err := h.guardReaderIsRegistered(ctx, command.ReaderPhone); err != nil {
		return Result{}, err
	}

	borrowedOn := core.ToDate(command.OccurredAt)

	lent, err := h.store.LendBook(ctx, command.BookID, command.ReaderPhone, borrowedOn)
	if err != nil {
		return Result{}, shell.StoreFailure(err)
	}

	if !lent {
		// The reader might have been removed after the check.
		if guardErr := h.guardReaderIsRegistered(ctx, command.ReaderPhone); guardErr != nil {
			return Result{}, guardErr
		}

		return Result{}, core.ErrBookUnavailable
	}

	return Result{
		BookID:       command.BookID,
		ReaderPhone:  command.ReaderPhone,
		BorrowedDate: borrowedOn,
		DueDate:      core.DueDate(borrowedOn),
	}, nil
}

func (h CommandHandler) guardReaderIsRegistered(ctx context.Context, phone string) error {
	_, found, err := h.store.FindReader(ctx, phone)
	if err != nil {
		return shell.StoreFailure(err)
	}

	if !found {
		return core.ErrReaderNotFound
	}

	return nil
}
