// Package returnbook implements the Return Book use case.
//
// Returning clears the loan data of a book. Returning a book that is already available succeeds and changes nothing.
package returnbook
