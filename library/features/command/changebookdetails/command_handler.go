package changebookdetails

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/entitystore"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
)

// Store defines the entity store operations needed by the CommandHandler.
type Store interface {
	UpdateBookDetails(ctx context.Context, id uuid.UUID, patch entitystore.BookDetailsPatch) (bool, error)
}

// Result reports the id of the changed book.
type Result struct {
	BookID uuid.UUID
}

// CommandHandler merges a patch into a stored book.
type CommandHandler struct {
	store Store
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(store Store) CommandHandler {
	return CommandHandler{store: store}
}

// Handle executes the workflow: Validate -> Update.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	ctx = entitystore.WithStrongConsistency(ctx)

	patch, err := core.BuildBookDetailsPatch(command.Patch, command.OccurredAt)
	if err != nil {
		return Result{}, err
	}

	found, err := h.store.UpdateBookDetails(ctx, command.BookID, patch)
	if err != nil {
		return Result{}, shell.StoreFailure(err)
	}

	if !found {
		return Result{}, core.NewBookNotFoundError(command.BookID.String())
	}

	return Result{BookID: command.BookID}, nil
}
