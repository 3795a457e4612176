// Package postgresengine provides a PostgreSQL implementation of the library entity store.
//
// Books and readers live in two tables. Every state change that depends on the current state
// is expressed as one guarded SQL statement, and the affected row count tells the caller
// whether the guard held:
//   - lending updates the book only while it is available and the reader exists
//   - deleting a reader only matches while no book references the reader
//
// Key features:
//   - Multiple database adapter support (PGX, SQL, SQLX)
//   - Optional read replica for eventually consistent reads (PGX only)
//   - Configurable table names
//   - Optional logging, metrics, and tracing through dependency-free interfaces
//
// Usage examples:
//
//	db, _ := pgxpool.New(context.Background(), dsn)
//	store, _ := postgresengine.NewStoreFromPGXPool(db)
//	_ = store.CreateSchema(ctx)
//
//	// With logging and tracing
//	store, _ := postgresengine.NewStoreFromPGXPool(
//		db,
//		postgresengine.WithBooksTableName("library_books"),
//		postgresengine.WithLogger(slog.Default()),
//		postgresengine.WithTracing(tracingCollector),
//	)
//
//	lent, err := store.LendBook(ctx, bookID, "79161234567", today)
package postgresengine
