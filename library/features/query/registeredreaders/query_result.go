package registeredreaders

import (
	"github.com/AntonStoeckl/library-lending-go/entitystore"
)

// RegisteredReaders represents the query result containing all readers.
type RegisteredReaders struct {
	Readers []entitystore.Reader
	Count   int
}
