package removereader

import (
	"context"

	"github.com/AntonStoeckl/library-lending-go/entitystore"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
)

// Store defines the entity store operations needed by the CommandHandler.
type Store interface {
	CountBooksBorrowedBy(ctx context.Context, phone string) (int, error)
	DeleteReaderWithoutLoans(ctx context.Context, phone string) (bool, error)
}

// Result reports the phone of the removed reader.
type Result struct {
	Phone string
}

// CommandHandler removes readers that hold no books.
type CommandHandler struct {
	store Store
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(store Store) CommandHandler {
	return CommandHandler{store: store}
}

// Handle executes the workflow: Count loans -> Guarded delete.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	ctx = entitystore.WithStrongConsistency(ctx)

	if err := h.guardHoldsNoBooks(ctx, command.Phone); err != nil {
		return Result{}, err
	}

	deleted, err := h.store.DeleteReaderWithoutLoans(ctx, command.Phone)
	if err != nil {
		return Result{}, shell.StoreFailure(err)
	}

	if !deleted {
		// A book might have been lent in between, otherwise the reader is gone.
		if guardErr := h.guardHoldsNoBooks(ctx, command.Phone); guardErr != nil {
			return Result{}, guardErr
		}

		return Result{}, core.NewReaderNotFoundError(command.Phone)
	}

	return Result{Phone: command.Phone}, nil
}

func (h CommandHandler) guardHoldsNoBooks(ctx context.Context, phone string) error {
	count, err := h.store.CountBooksBorrowedBy(ctx, phone)
	if err != nil {
		return shell.StoreFailure(err)
	}

	if count > 0 {
		return core.NewActiveLoansError(count)
	}

	return nil
}
