// Package changebookdetails implements the Change Book Details use case.
//
// Only the supplied fields are changed, every other field keeps its stored value.
// Loan data (status, borrower, borrowed date) can not be changed here, that is what lending and returning do.
package changebookdetails
