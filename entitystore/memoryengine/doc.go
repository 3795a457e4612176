// Package memoryengine provides an in-memory implementation of the library entity store.
//
// It mirrors the behavior of postgresengine, including the guarded writes for lending a book
// and deleting a reader, and is safe for concurrent use. It backs the feature tests
// and the server's demo mode, where no database is configured.
package memoryengine
