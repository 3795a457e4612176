package overduebooks

import (
	"context"

	"github.com/AntonStoeckl/library-lending-go/entitystore"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
)

// Store defines the entity store operations needed by the QueryHandler.
type Store interface {
	ListLoans(ctx context.Context) ([]entitystore.Loan, error)
}

// QueryHandler lists overdue loans.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle executes the workflow: Load loans -> Project.
func (h QueryHandler) Handle(ctx context.Context, query Query) (OverdueBooks, error) {
	ctx = entitystore.WithEventualConsistency(ctx)

	loans, err := h.store.ListLoans(ctx)
	if err != nil {
		return OverdueBooks{}, shell.StoreFailure(err)
	}

	return Project(loans, query), nil
}
