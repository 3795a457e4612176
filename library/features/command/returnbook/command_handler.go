package returnbook

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/entitystore"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
)

// Store defines the entity store operations needed by the CommandHandler.
type Store interface {
	ReturnBook(ctx context.Context, id uuid.UUID) (bool, error)
}

// Result reports the id of the returned book.
type Result struct {
	BookID uuid.UUID
}

// CommandHandler returns lent books.
type CommandHandler struct {
	store Store
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(store Store) CommandHandler {
	return CommandHandler{store: store}
}

// Handle clears the loan data of the book.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	ctx = entitystore.WithStrongConsistency(ctx)

	found, err := h.store.ReturnBook(ctx, command.BookID)
	if err != nil {
		return Result{}, shell.StoreFailure(err)
	}

	if !found {
		return Result{}, core.ErrBookNotFound
	}

	return Result{BookID: command.BookID}, nil
}
