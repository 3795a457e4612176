package readerdetails

import (
	"github.com/AntonStoeckl/library-lending-go/entitystore"
)

// ReaderDetails is a reader together with the number of books they hold.
type ReaderDetails struct {
	entitystore.Reader
	BooksBorrowed int
}
