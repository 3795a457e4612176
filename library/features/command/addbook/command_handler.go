package addbook

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/entitystore"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
)

// Store defines the entity store operations needed by the CommandHandler.
type Store interface {
	FindReader(ctx context.Context, phone string) (entitystore.Reader, bool, error)
	InsertBook(ctx context.Context, book entitystore.Book) error
}

// Result reports the id of the added book.
type Result struct {
	BookID uuid.UUID
}

// CommandHandler validates and stores a new book.
type CommandHandler struct {
	store Store
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(store Store) CommandHandler {
	return CommandHandler{store: store}
}

// Handle executes the workflow: Validate -> (Check borrower) -> Insert.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	ctx = entitystore.WithStrongConsistency(ctx)

	book, err := core.BuildBook(command.BookID, command.Book, command.OccurredAt)
	if err != nil {
		return Result{}, err
	}

	if book.IsBorrowed() {
		if err = h.guardBorrowerIsRegistered(ctx, *book.BorrowerPhone); err != nil {
			return Result{}, err
		}
	}

	if err = h.store.InsertBook(ctx, book); err != nil {
		// The borrower might have been removed after the check, the foreign key rejects the insert then.
		if book.IsBorrowed() {
			if guardErr := h.guardBorrowerIsRegistered(ctx, *book.BorrowerPhone); guardErr != nil {
				return Result{}, guardErr
			}
		}

		return Result{}, shell.StoreFailure(err)
	}

	return Result{BookID: book.ID}, nil
}

func (h CommandHandler) guardBorrowerIsRegistered(ctx context.Context, phone string) error {
	_, found, err := h.store.FindReader(ctx, phone)
	if err != nil {
		return shell.StoreFailure(err)
	}

	if !found {
		return core.ErrReaderNotFound
	}

	return nil
}
