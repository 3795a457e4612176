// Package librarystats implements the Library Stats query use case.
//
// All numbers are derived from the current records on every query, nothing is stored.
package librarystats
