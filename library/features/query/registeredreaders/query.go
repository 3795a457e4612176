package registeredreaders

const (
	queryType = "RegisteredReaders"
)

// Query represents the intent to list all registered readers.
type Query struct{}

// BuildQuery creates a new Query.
func BuildQuery() Query {
	return Query{}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
