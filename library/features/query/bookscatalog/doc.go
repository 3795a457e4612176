// Package bookscatalog implements the Books Catalog query use case.
//
// It returns every book ordered by title, together with the name of the current borrower of lent books.
package bookscatalog
