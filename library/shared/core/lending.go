package core

import (
	"math"
	"time"
)

// OverduePolicyDays is how long a book may be kept. A loan is overdue only after more days than this.
const OverduePolicyDays = 14

// DaysSince returns the whole calendar days between borrowedOn and today, rounded up.
// Loans dated in the future count as 0 days.
func DaysSince(borrowedOn, today time.Time) int {
	elapsed := ToDate(today).Sub(ToDate(borrowedOn))
	if elapsed <= 0 {
		return 0
	}

	return int(math.Ceil(elapsed.Hours() / 24))
}

// IsOverdue reports whether a loan started on borrowedOn is overdue on today.
func IsOverdue(borrowedOn, today time.Time) bool {
	return DaysSince(borrowedOn, today) > OverduePolicyDays
}

// DueDate returns the last day a loan started on borrowedOn is not overdue.
func DueDate(borrowedOn time.Time) time.Time {
	return ToDate(borrowedOn).AddDate(0, 0, OverduePolicyDays)
}
