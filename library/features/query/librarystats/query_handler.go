package librarystats

import (
	"context"

	"github.com/AntonStoeckl/library-lending-go/entitystore"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
)

// Store defines the entity store operations needed by the QueryHandler.
type Store interface {
	CountStats(ctx context.Context) (entitystore.Stats, error)
	ListLoans(ctx context.Context) ([]entitystore.Loan, error)
}

// QueryHandler computes the library totals.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle executes the workflow: Count -> Count overdue loans.
func (h QueryHandler) Handle(ctx context.Context, query Query) (LibraryStats, error) {
	ctx = entitystore.WithEventualConsistency(ctx)

	stats, err := h.store.CountStats(ctx)
	if err != nil {
		return LibraryStats{}, shell.StoreFailure(err)
	}

	loans, err := h.store.ListLoans(ctx)
	if err != nil {
		return LibraryStats{}, shell.StoreFailure(err)
	}

	overdue := 0

	for _, loan := range loans {
		if core.IsOverdue(loan.BorrowedDate, query.Today) {
			overdue++
		}
	}

	return LibraryStats{Stats: stats, OverdueBooks: overdue}, nil
}
