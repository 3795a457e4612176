// Package readerdetails implements the Reader Details query use case.
//
// Besides the reader record it reports how many books the reader currently holds.
package readerdetails
