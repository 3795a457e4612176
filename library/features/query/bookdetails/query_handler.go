package bookdetails

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/entitystore"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
)

// Store defines the entity store operations needed by the QueryHandler.
type Store interface {
	FindBook(ctx context.Context, id uuid.UUID) (entitystore.CatalogEntry, bool, error)
}

// QueryHandler loads single books.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle loads the book or reports core.ErrNotFound.
func (h QueryHandler) Handle(ctx context.Context, query Query) (BookDetails, error) {
	ctx = entitystore.WithEventualConsistency(ctx)

	entry, found, err := h.store.FindBook(ctx, query.BookID)
	if err != nil {
		return BookDetails{}, shell.StoreFailure(err)
	}

	if !found {
		return BookDetails{}, core.NewBookNotFoundError(query.BookID.String())
	}

	details := BookDetails{CatalogEntry: entry}

	if entry.IsBorrowed() && entry.BorrowedDate != nil {
		dueDate := core.DueDate(*entry.BorrowedDate)
		details.DueDate = &dueDate
	}

	return details, nil
}
