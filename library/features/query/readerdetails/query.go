package readerdetails

const (
	queryType = "ReaderDetails"
)

// Query represents the intent to load one reader.
type Query struct {
	Phone string
}

// BuildQuery creates a new Query with the provided phone.
func BuildQuery(phone string) Query {
	return Query{Phone: phone}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
