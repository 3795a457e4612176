// Package removereader implements the Remove Reader use case.
//
// A reader can only be removed while they hold no books.
package removereader
