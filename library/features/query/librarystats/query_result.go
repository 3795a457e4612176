package librarystats

import (
	"github.com/AntonStoeckl/library-lending-go/entitystore"
)

// LibraryStats holds the book and reader totals plus the number of overdue loans.
type LibraryStats struct {
	entitystore.Stats
	OverdueBooks int
}
