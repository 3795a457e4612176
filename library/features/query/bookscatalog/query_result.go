package bookscatalog

import (
	"github.com/AntonStoeckl/library-lending-go/entitystore"
)

// BooksCatalog represents the query result containing all books.
type BooksCatalog struct {
	Books []entitystore.CatalogEntry
	Count int
}
