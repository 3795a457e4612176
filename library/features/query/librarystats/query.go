package librarystats

import (
	"time"
)

const (
	queryType = "LibraryStats"
)

// Query represents the intent to compute the library totals as of Today.
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
