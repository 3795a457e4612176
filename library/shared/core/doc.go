// Package core contains the pure rules of the library: validation and defaults for books and readers,
// calendar date handling, the overdue policy, and the error taxonomy shared by all features.
//
// Nothing in here performs I/O. The current date is always passed in by the caller.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
