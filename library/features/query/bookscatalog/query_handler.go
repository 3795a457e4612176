package bookscatalog

import (
	"context"

	"github.com/AntonStoeckl/library-lending-go/entitystore"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
)

// Store defines the entity store operations needed by the QueryHandler.
type Store interface {
	ListBooks(ctx context.Context) ([]entitystore.CatalogEntry, error)
}

// QueryHandler lists the catalog.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle loads all books. Reads may be served by a replica.
func (h QueryHandler) Handle(ctx context.Context, _ Query) (BooksCatalog, error) {
	ctx = entitystore.WithEventualConsistency(ctx)

	books, err := h.store.ListBooks(ctx)
	if err != nil {
		return BooksCatalog{}, shell.StoreFailure(err)
	}

	return BooksCatalog{Books: books, Count: len(books)}, nil
}
