package overduebooks

import (
	"time"
)

const (
	queryType = "OverdueBooks"
)

// Query represents the intent to list overdue loans as of Today.
type Query struct {
	Today time.Time
}

// BuildQuery creates a new Query for the given day.
func BuildQuery(today time.Time) Query {
	return Query{Today: today}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
