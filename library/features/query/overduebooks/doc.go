// Package overduebooks implements the Overdue Books query use case.
//
// A loan is overdue when more than core.OverduePolicyDays calendar days have passed since the borrowed date.
// Overdue state is derived from the given day on every query and never stored.
// The longest running loans come first.
package overduebooks
