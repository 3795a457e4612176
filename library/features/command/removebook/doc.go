// Package removebook implements the Remove Book use case.
//
// Removing a book is unconditional, even while it is lent to a reader.
// That case is reported with Result.WasOnLoan and logged as a warning, so the lost loan does not go unnoticed.
package removebook
