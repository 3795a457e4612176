// Package addbook implements the Add Book use case.
//
// A book is validated and completed with defaults (hard cover, good condition, genre "unspecified",
// current publication year) before it is stored. A book may be added as already borrowed,
// which requires the phone of a registered reader and sets the borrowed date to the day of the command.
package addbook
