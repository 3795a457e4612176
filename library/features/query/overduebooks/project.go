package overduebooks

import (
	"sort"

	"github.com/AntonStoeckl/library-lending-go/entitystore"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

// Project selects the overdue loans as of query.Today.
// This is a pure function: the same loans and day always yield the same result.
//
// Query Logic:
//
//	GIVEN: All current loans
//	WHEN: OverdueBooks query is executed for a day
//	THEN: OverdueBooks is returned, ordered by days borrowed descending
//	INCLUDES: Loans borrowed more than core.OverduePolicyDays days before that day
//	EXCLUDES: Loans within the lending period, including the due date itself
func Project(loans []entitystore.Loan, query Query) OverdueBooks {
	overdue := make([]OverdueLoan, 0)

	for _, loan := range loans {
		if !core.IsOverdue(loan.BorrowedDate, query.Today) {
			continue
		}

		overdue = append(overdue, OverdueLoan{
			Loan:         loan,
			DaysBorrowed: core.DaysSince(loan.BorrowedDate, query.Today),
			DueDate:      core.DueDate(loan.BorrowedDate),
		})
	}

	// Stable, so loans of the same day keep the store order.
	sort.SliceStable(overdue, func(i, j int) bool {
		return overdue[i].DaysBorrowed > overdue[j].DaysBorrowed
	})

	return OverdueBooks{Loans: overdue, Count: len(overdue)}
}
