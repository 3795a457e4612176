// Package entitystore provides the core abstractions and types for persisting
// the catalog (books) and the registered readers of a public library.
//
// This package defines the records shared by the different storage engines,
// the storage-level error definitions, and the dependency-free observability
// contracts that engines and handlers report to.
//
// Key types:
//   - Book: a catalog record including its lending fields
//   - CatalogEntry: a Book joined with the borrower's name
//   - Reader: a registered reader, identified by phone number
//   - Loan: a currently borrowed book joined with its reader
//   - Stats: counts derived from the current catalog and reader records
//
// Engines:
//   - postgresengine: PostgreSQL via pgx.Pool, sql.DB, or sqlx.DB
//   - memoryengine: process-local maps guarded by a mutex
//
// Common usage pattern:
//
//	store, err := postgresengine.NewStoreFromPGXPool(pool, postgresengine.WithLogger(logger))
//	if err != nil {
//		// handle error
//	}
//
//	lent, err := store.LendBook(ctx, bookID, phone, today)
//	if err == nil && !lent {
//		// the book was not available (or does not exist)
//	}
package entitystore
