package registeredreaders

import (
	"context"

	"github.com/AntonStoeckl/library-lending-go/entitystore"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
)

// Store defines the entity store operations needed by the QueryHandler.
type Store interface {
	ListReaders(ctx context.Context) ([]entitystore.Reader, error)
}

// QueryHandler lists readers.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle loads all readers.
func (h QueryHandler) Handle(ctx context.Context, _ Query) (RegisteredReaders, error) {
	ctx = entitystore.WithEventualConsistency(ctx)

	readers, err := h.store.ListReaders(ctx)
	if err != nil {
		return RegisteredReaders{}, shell.StoreFailure(err)
	}

	return RegisteredReaders{Readers: readers, Count: len(readers)}, nil
}
