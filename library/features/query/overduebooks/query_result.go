package overduebooks

import (
	"time"

	"github.com/AntonStoeckl/library-lending-go/entitystore"
)

// OverdueLoan is a loan that passed its due date.
type OverdueLoan struct {
	entitystore.Loan
	DaysBorrowed int
	DueDate      time.Time
}

// OverdueBooks represents the query result containing all overdue loans.
type OverdueBooks struct {
	Loans []OverdueLoan
	Count int
}
