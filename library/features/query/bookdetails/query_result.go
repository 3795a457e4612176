package bookdetails

import (
	"time"

	"github.com/AntonStoeckl/library-lending-go/entitystore"
)

// BookDetails is one catalog entry. DueDate is set while the book is lent.
type BookDetails struct {
	entitystore.CatalogEntry
	DueDate *time.Time
}
