package registerreader

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-lending-go/entitystore"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
)

// Store defines the entity store operations needed by the CommandHandler.
type Store interface {
	FindReader(ctx context.Context, phone string) (entitystore.Reader, bool, error)
	InsertReader(ctx context.Context, reader entitystore.Reader) error
}

// Result reports the phone of the registered reader.
type Result struct {
	Phone string
}

// CommandHandler validates and stores a new reader.
type CommandHandler struct {
	store Store
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(store Store) CommandHandler {
	return CommandHandler{store: store}
}

// Handle executes the workflow: Validate -> Check duplicate -> Insert.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	ctx = entitystore.WithStrongConsistency(ctx)

	reader, err := core.BuildReader(command.Reader, command.OccurredAt)
	if err != nil {
		return Result{}, err
	}

	_, found, err := h.store.FindReader(ctx, reader.Phone)
	if err != nil {
		return Result{}, shell.StoreFailure(err)
	}

	if found {
		return Result{}, core.ErrDuplicatePhone
	}

	// A concurrent registration of the same phone can still win the race, the unique key decides then.
	if err = h.store.InsertReader(ctx, reader); err != nil {
		if errors.Is(err, entitystore.ErrDuplicateKey) {
			return Result{}, core.ErrDuplicatePhone
		}

		return Result{}, shell.StoreFailure(err)
	}

	return Result{Phone: reader.Phone}, nil
}
