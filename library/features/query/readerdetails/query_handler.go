package readerdetails

import (
	"context"

	"github.com/AntonStoeckl/library-lending-go/entitystore"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
)

// Store defines the entity store operations needed by the QueryHandler.
type Store interface {
	FindReader(ctx context.Context, phone string) (entitystore.Reader, bool, error)
	CountBooksBorrowedBy(ctx context.Context, phone string) (int, error)
}

// QueryHandler loads single readers.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle loads the reader or reports core.ErrNotFound.
func (h QueryHandler) Handle(ctx context.Context, query Query) (ReaderDetails, error) {
	ctx = entitystore.WithEventualConsistency(ctx)

	reader, found, err := h.store.FindReader(ctx, query.Phone)
	if err != nil {
		return ReaderDetails{}, shell.StoreFailure(err)
	}

	if !found {
		return ReaderDetails{}, core.NewReaderNotFoundError(query.Phone)
	}

	count, err := h.store.CountBooksBorrowedBy(ctx, query.Phone)
	if err != nil {
		return ReaderDetails{}, shell.StoreFailure(err)
	}

	return ReaderDetails{Reader: reader, BooksBorrowed: count}, nil
}
