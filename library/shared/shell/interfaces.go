package shell

import "context"

// Command represents the contract for all command types.
// The CommandType method gives the observable decorators a stable name for logs, metrics and spans.
type Command interface {
	CommandType() string
}

// Query represents the contract for all query types.
type Query interface {
	QueryType() string
}

// CommandHandler processes a command of type C and returns a result of type R.
// Business rejections are returned as errors from the core error taxonomy.
type CommandHandler[C Command, R any] interface {
	Handle(ctx context.Context, command C) (R, error)
}

// QueryHandler processes a query of type Q and returns a projection of type R.
type QueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// ReportsBusinessOutcome can be implemented by handler results that want a more specific
// business outcome than StatusSuccess in logs, metrics and spans.
type ReportsBusinessOutcome interface {
	BusinessOutcome() string
}
