package entitystore

import "errors"

var (
	// ErrNilDatabaseConnection is returned when a nil database connection is supplied to an engine constructor.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrEmptyBooksTableName is returned when an empty books table name is supplied.
	ErrEmptyBooksTableName = errors.New("books table name must not be empty")

	// ErrEmptyReadersTableName is returned when an empty readers table name is supplied.
	ErrEmptyReadersTableName = errors.New("readers table name must not be empty")

	// ErrBuildingQueryFailed is returned when the SQL statement could not be built.
	ErrBuildingQueryFailed = errors.New("building query failed")

	// ErrQueryingFailed is returned when a read query fails at the database.
	ErrQueryingFailed = errors.New("querying records failed")

	// ErrScanningDBRowFailed is returned when a database row can not be scanned into a record.
	ErrScanningDBRowFailed = errors.New("scanning db row failed")

	// ErrExecFailed is returned when a write statement fails at the database.
	ErrExecFailed = errors.New("executing statement failed")

	// ErrGettingRowsAffectedFailed is returned when the affected row count is not available.
	ErrGettingRowsAffectedFailed = errors.New("getting rows affected failed")

	// ErrDuplicateKey is returned when an insert violates a primary key or unique constraint.
	ErrDuplicateKey = errors.New("duplicate key")
)
