package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/library-lending-go/entitystore"
	"github.com/AntonStoeckl/library-lending-go/entitystore/postgresengine/internal/adapters"
)

const (
	defaultBooksTableName        = "books"
	defaultReadersTableName      = "readers"
	logMsgBuildQueryFailed       = "failed to build query"
	logMsgDBQueryFailed          = "database query execution failed"
	logMsgDBExecFailed           = "database statement execution failed"
	logMsgCloseRowsFailed        = "failed to close database rows"
	logMsgScanRowFailed          = "failed to scan database row"
	logMsgRowsAffectedFailed     = "failed to get rows affected count"
	logMsgDuplicateKey           = "duplicate key on insert"
	logMsgPingFailed             = "database ping failed"
	errorTypeBuildQuery          = "build_query"
	errorTypeQuery               = "query"
	errorTypeExec                = "exec"
	errorTypeScan                = "scan"
	errorTypeRowsAffected        = "rows_affected"
	errorTypeDuplicateKey        = "duplicate_key"
	errorTypePing                = "ping"
	operationPing                = "ping"
	operationInsertBook          = "insert_book"
	operationUpdateBookDetails   = "update_book_details"
	operationDeleteBook          = "delete_book"
	operationFindBook            = "find_book"
	operationListBooks           = "list_books"
	operationInsertReader        = "insert_reader"
	operationFindReader          = "find_reader"
	operationListReaders         = "list_readers"
	operationCountBooksBorrowed  = "count_books_borrowed_by"
	operationDeleteReaderNoLoans = "delete_reader_without_loans"
	operationLendBook            = "lend_book"
	operationReturnBook          = "return_book"
	operationListLoans           = "list_loans"
	operationCountStats          = "count_stats"
	logAttrBookID                = "book_id"
	logAttrReaderPhone           = "reader_phone"
)

// Store persists books and readers in PostgreSQL.
// Conditional writes (lending a book, deleting a reader) are single guarded statements,
// so their outcome is decided by the database and not by a preceding read.
type Store struct {
	db               adapters.DBAdapter
	booksTableName   string
	readersTableName string
	logger           entitystore.Logger
	contextualLogger entitystore.ContextualLogger
	metricsCollector entitystore.MetricsCollector
	tracingCollector entitystore.TracingCollector
}

// NewStoreFromPGXPool creates a new Store using a pgx Pool with optional configuration.
func NewStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (*Store, error) {
	if db == nil {
		return nil, entitystore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapter(db), options...)
}

// NewStoreFromPGXPoolWithReplica creates a new Store using a primary and a replica pgx Pool.
// Reads run on the replica when the context asks for entitystore.EventualConsistency, all writes hit the primary.
func NewStoreFromPGXPoolWithReplica(primary, replica *pgxpool.Pool, options ...Option) (*Store, error) {
	if primary == nil {
		return nil, entitystore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapterWithReplica(primary, replica), options...)
}

// NewStoreFromSQLDB creates a new Store using a sql.DB with optional configuration.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, entitystore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), options...)
}

// NewStoreFromSQLX creates a new Store using a sqlx.DB with optional configuration.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, entitystore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapter(db), options...)
}

func newStore(db adapters.DBAdapter, options ...Option) (*Store, error) {
	s := &Store{
		db:               db,
		booksTableName:   defaultBooksTableName,
		readersTableName: defaultReadersTableName,
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	observer, ctx := s.startOperation(ctx, operationPing)

	if err := s.db.Ping(ctx); err != nil {
		return observer.finishError(logMsgPingFailed, errorTypePing, errors.Join(entitystore.ErrQueryingFailed, err))
	}

	observer.finishSuccess()

	return nil
}

// InsertBook stores a new book. A clashing ID yields entitystore.ErrDuplicateKey.
func (s *Store) InsertBook(ctx context.Context, book entitystore.Book) error {
	observer, ctx := s.startOperation(ctx, operationInsertBook)

	sqlQuery, buildErr := s.buildInsertBookQuery(book)
	if buildErr != nil {
		return observer.finishError(logMsgBuildQueryFailed, errorTypeBuildQuery, buildErr)
	}

	if _, err := s.exec(ctx, observer, sqlQuery); err != nil {
		return err
	}

	observer.finishSuccess()

	return nil
}

// UpdateBookDetails overwrites the supplied fields of a book and keeps the others.
// It reports false if no book with the given ID exists.
func (s *Store) UpdateBookDetails(ctx context.Context, id uuid.UUID, patch entitystore.BookDetailsPatch) (bool, error) {
	observer, ctx := s.startOperation(ctx, operationUpdateBookDetails)

	sqlQuery, buildErr := s.buildUpdateBookDetailsQuery(id, patch)
	if buildErr != nil {
		return false, observer.finishError(logMsgBuildQueryFailed, errorTypeBuildQuery, buildErr)
	}

	rowsAffected, err := s.exec(ctx, observer, sqlQuery)
	if err != nil {
		return false, err
	}

	observer.finishSuccess()

	return rowsAffected > 0, nil
}

// DeleteBook removes a book. It reports whether a row was deleted and whether the book was on loan at that moment.
func (s *Store) DeleteBook(ctx context.Context, id uuid.UUID) (deleted bool, wasBorrowed bool, err error) {
	observer, ctx := s.startOperation(ctx, operationDeleteBook)

	sqlQuery, buildErr := s.buildDeleteBookQuery(id)
	if buildErr != nil {
		return false, false, observer.finishError(logMsgBuildQueryFailed, errorTypeBuildQuery, buildErr)
	}

	rows, queryErr := s.query(ctx, observer, sqlQuery)
	if queryErr != nil {
		return false, false, queryErr
	}
	defer s.closeRows(ctx, rows)

	for rows.Next() {
		var borrowerPhone *string
		if scanErr := rows.Scan(&borrowerPhone); scanErr != nil {
			return false, false, observer.finishError(logMsgScanRowFailed, errorTypeScan, errors.Join(entitystore.ErrScanningDBRowFailed, scanErr))
		}

		deleted = true
		wasBorrowed = borrowerPhone != nil
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return false, false, observer.finishError(logMsgDBQueryFailed, errorTypeQuery, errors.Join(entitystore.ErrQueryingFailed, rowsErr))
	}

	observer.finishSuccess()

	return deleted, wasBorrowed, nil
}

// FindBook loads one book together with the name of its current borrower.
func (s *Store) FindBook(ctx context.Context, id uuid.UUID) (entitystore.CatalogEntry, bool, error) {
	observer, ctx := s.startOperation(ctx, operationFindBook)

	sqlQuery, buildErr := s.buildFindBookQuery(id)
	if buildErr != nil {
		return entitystore.CatalogEntry{}, false, observer.finishError(logMsgBuildQueryFailed, errorTypeBuildQuery, buildErr)
	}

	entries, err := s.queryCatalog(ctx, observer, sqlQuery)
	if err != nil {
		return entitystore.CatalogEntry{}, false, err
	}

	observer.finishSuccess()

	if len(entries) == 0 {
		return entitystore.CatalogEntry{}, false, nil
	}

	return entries[0], true, nil
}

// ListBooks returns the whole catalog ordered by title.
func (s *Store) ListBooks(ctx context.Context) ([]entitystore.CatalogEntry, error) {
	observer, ctx := s.startOperation(ctx, operationListBooks)

	sqlQuery, buildErr := s.buildListBooksQuery()
	if buildErr != nil {
		return nil, observer.finishError(logMsgBuildQueryFailed, errorTypeBuildQuery, buildErr)
	}

	entries, err := s.queryCatalog(ctx, observer, sqlQuery)
	if err != nil {
		return nil, err
	}

	observer.finishSuccess()

	return entries, nil
}

// InsertReader stores a new reader. An already registered phone yields entitystore.ErrDuplicateKey.
func (s *Store) InsertReader(ctx context.Context, reader entitystore.Reader) error {
	observer, ctx := s.startOperation(ctx, operationInsertReader)

	sqlQuery, buildErr := s.buildInsertReaderQuery(reader)
	if buildErr != nil {
		return observer.finishError(logMsgBuildQueryFailed, errorTypeBuildQuery, buildErr)
	}

	if _, err := s.exec(ctx, observer, sqlQuery); err != nil {
		return err
	}

	observer.finishSuccess()

	return nil
}

// FindReader loads one reader by phone.
func (s *Store) FindReader(ctx context.Context, phone string) (entitystore.Reader, bool, error) {
	observer, ctx := s.startOperation(ctx, operationFindReader)

	sqlQuery, buildErr := s.buildFindReaderQuery(phone)
	if buildErr != nil {
		return entitystore.Reader{}, false, observer.finishError(logMsgBuildQueryFailed, errorTypeBuildQuery, buildErr)
	}

	readers, err := s.queryReaders(ctx, observer, sqlQuery)
	if err != nil {
		return entitystore.Reader{}, false, err
	}

	observer.finishSuccess()

	if len(readers) == 0 {
		return entitystore.Reader{}, false, nil
	}

	return readers[0], true, nil
}

// ListReaders returns all readers, newest registrations first and then by last name.
func (s *Store) ListReaders(ctx context.Context) ([]entitystore.Reader, error) {
	observer, ctx := s.startOperation(ctx, operationListReaders)

	sqlQuery, buildErr := s.buildListReadersQuery()
	if buildErr != nil {
		return nil, observer.finishError(logMsgBuildQueryFailed, errorTypeBuildQuery, buildErr)
	}

	readers, err := s.queryReaders(ctx, observer, sqlQuery)
	if err != nil {
		return nil, err
	}

	observer.finishSuccess()

	return readers, nil
}

// CountBooksBorrowedBy returns how many books the reader currently holds.
func (s *Store) CountBooksBorrowedBy(ctx context.Context, phone string) (int, error) {
	observer, ctx := s.startOperation(ctx, operationCountBooksBorrowed)

	sqlQuery, buildErr := s.buildCountBooksBorrowedByQuery(phone)
	if buildErr != nil {
		return 0, observer.finishError(logMsgBuildQueryFailed, errorTypeBuildQuery, buildErr)
	}

	counts, err := s.queryCounts(ctx, observer, sqlQuery, 1)
	if err != nil {
		return 0, err
	}

	observer.finishSuccess()

	return int(counts[0]), nil
}

// DeleteReaderWithoutLoans removes a reader only while no book is lent to them.
// It reports false if nothing was deleted, either because the reader does not exist or because a loan appeared.
func (s *Store) DeleteReaderWithoutLoans(ctx context.Context, phone string) (bool, error) {
	observer, ctx := s.startOperation(ctx, operationDeleteReaderNoLoans)

	sqlQuery, buildErr := s.buildDeleteReaderWithoutLoansQuery(phone)
	if buildErr != nil {
		return false, observer.finishError(logMsgBuildQueryFailed, errorTypeBuildQuery, buildErr)
	}

	rowsAffected, err := s.exec(ctx, observer, sqlQuery)
	if err != nil {
		return false, err
	}

	if rowsAffected == 0 {
		observer.guardRejected(logAttrReaderPhone, phone)
	}

	observer.finishSuccess()

	return rowsAffected > 0, nil
}

// LendBook marks an available book as borrowed by an existing reader.
// It reports false if the book is missing, already borrowed, or the reader does not exist.
// Of two concurrent calls for the same available book exactly one reports true.
func (s *Store) LendBook(ctx context.Context, id uuid.UUID, phone string, borrowedOn time.Time) (bool, error) {
	observer, ctx := s.startOperation(ctx, operationLendBook)

	sqlQuery, buildErr := s.buildLendBookQuery(id, phone, borrowedOn)
	if buildErr != nil {
		return false, observer.finishError(logMsgBuildQueryFailed, errorTypeBuildQuery, buildErr)
	}

	rowsAffected, err := s.exec(ctx, observer, sqlQuery)
	if err != nil {
		return false, err
	}

	if rowsAffected == 0 {
		observer.guardRejected(logAttrBookID, id.String(), logAttrReaderPhone, phone)
	}

	observer.finishSuccess()

	return rowsAffected > 0, nil
}

// ReturnBook marks a book as available and clears its loan data.
// Returning a book that is not borrowed succeeds as well. It reports false only if the book does not exist.
func (s *Store) ReturnBook(ctx context.Context, id uuid.UUID) (bool, error) {
	observer, ctx := s.startOperation(ctx, operationReturnBook)

	sqlQuery, buildErr := s.buildReturnBookQuery(id)
	if buildErr != nil {
		return false, observer.finishError(logMsgBuildQueryFailed, errorTypeBuildQuery, buildErr)
	}

	rowsAffected, err := s.exec(ctx, observer, sqlQuery)
	if err != nil {
		return false, err
	}

	observer.finishSuccess()

	return rowsAffected > 0, nil
}

// ListLoans returns every borrowed book joined with its borrower, oldest loans first.
func (s *Store) ListLoans(ctx context.Context) ([]entitystore.Loan, error) {
	observer, ctx := s.startOperation(ctx, operationListLoans)

	sqlQuery, buildErr := s.buildListLoansQuery()
	if buildErr != nil {
		return nil, observer.finishError(logMsgBuildQueryFailed, errorTypeBuildQuery, buildErr)
	}

	rows, queryErr := s.query(ctx, observer, sqlQuery)
	if queryErr != nil {
		return nil, queryErr
	}
	defer s.closeRows(ctx, rows)

	loans := make([]entitystore.Loan, 0)

	for rows.Next() {
		var (
			loan entitystore.Loan
			id   string
		)

		scanErr := rows.Scan(&id, &loan.Title, &loan.Author, &loan.BorrowedDate, &loan.ReaderPhone, &loan.ReaderFirstName, &loan.ReaderLastName)
		if scanErr != nil {
			return nil, observer.finishError(logMsgScanRowFailed, errorTypeScan, errors.Join(entitystore.ErrScanningDBRowFailed, scanErr))
		}

		parsedID, parseErr := uuid.Parse(id)
		if parseErr != nil {
			return nil, observer.finishError(logMsgScanRowFailed, errorTypeScan, errors.Join(entitystore.ErrScanningDBRowFailed, parseErr))
		}

		loan.BookID = parsedID
		loans = append(loans, loan)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, observer.finishError(logMsgDBQueryFailed, errorTypeQuery, errors.Join(entitystore.ErrQueryingFailed, rowsErr))
	}

	observer.finishSuccess()

	return loans, nil
}

// CountStats returns the book and reader totals in one round trip.
func (s *Store) CountStats(ctx context.Context) (entitystore.Stats, error) {
	observer, ctx := s.startOperation(ctx, operationCountStats)

	sqlQuery, buildErr := s.buildCountStatsQuery()
	if buildErr != nil {
		return entitystore.Stats{}, observer.finishError(logMsgBuildQueryFailed, errorTypeBuildQuery, buildErr)
	}

	counts, err := s.queryCounts(ctx, observer, sqlQuery, 4)
	if err != nil {
		return entitystore.Stats{}, err
	}

	observer.finishSuccess()

	return entitystore.Stats{
		TotalBooks:     int(counts[0]),
		AvailableBooks: int(counts[1]),
		BorrowedBooks:  int(counts[2]),
		TotalReaders:   int(counts[3]),
	}, nil
}

// exec runs a write statement and returns the number of affected rows.
func (s *Store) exec(ctx context.Context, observer *operationObserver, sqlQuery string) (int64, error) {
	start := time.Now()
	result, execErr := s.db.Exec(ctx, sqlQuery)
	observer.logQuery(sqlQuery, time.Since(start))

	if execErr != nil {
		if adapters.IsUniqueViolation(execErr) {
			return 0, observer.finishError(logMsgDuplicateKey, errorTypeDuplicateKey, errors.Join(entitystore.ErrDuplicateKey, execErr))
		}

		return 0, observer.finishError(logMsgDBExecFailed, errorTypeExec, errors.Join(entitystore.ErrExecFailed, execErr))
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		return 0, observer.finishError(logMsgRowsAffectedFailed, errorTypeRowsAffected, errors.Join(entitystore.ErrGettingRowsAffectedFailed, rowsAffectedErr))
	}

	observer.recordRowsAffected(rowsAffected)

	return rowsAffected, nil
}

func (s *Store) query(ctx context.Context, observer *operationObserver, sqlQuery string) (adapters.DBRows, error) {
	start := time.Now()
	rows, queryErr := s.db.Query(ctx, sqlQuery)
	observer.logQuery(sqlQuery, time.Since(start))

	if queryErr != nil {
		return nil, observer.finishError(logMsgDBQueryFailed, errorTypeQuery, errors.Join(entitystore.ErrQueryingFailed, queryErr))
	}

	return rows, nil
}

// closeRows closes database rows and logs any errors.
func (s *Store) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if s.logger != nil {
			s.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}

		if s.contextualLogger != nil {
			s.contextualLogger.WarnContext(ctx, logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}

func (s *Store) queryCatalog(ctx context.Context, observer *operationObserver, sqlQuery string) ([]entitystore.CatalogEntry, error) {
	rows, queryErr := s.query(ctx, observer, sqlQuery)
	if queryErr != nil {
		return nil, queryErr
	}
	defer s.closeRows(ctx, rows)

	entries := make([]entitystore.CatalogEntry, 0)

	for rows.Next() {
		entry, scanErr := scanCatalogEntry(rows)
		if scanErr != nil {
			return nil, observer.finishError(logMsgScanRowFailed, errorTypeScan, scanErr)
		}

		entries = append(entries, entry)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, observer.finishError(logMsgDBQueryFailed, errorTypeQuery, errors.Join(entitystore.ErrQueryingFailed, rowsErr))
	}

	return entries, nil
}

func scanCatalogEntry(rows adapters.DBRows) (entitystore.CatalogEntry, error) {
	var (
		entry     entitystore.CatalogEntry
		id        string
		coverType string
		condition string
		status    string
	)

	scanErr := rows.Scan(
		&id,
		&entry.Title,
		&entry.Author,
		&coverType,
		&entry.PublicationYear,
		&entry.Genre,
		&entry.PageCount,
		&condition,
		&status,
		&entry.BorrowedDate,
		&entry.BorrowerPhone,
		&entry.BorrowerFirstName,
		&entry.BorrowerLastName,
	)
	if scanErr != nil {
		return entitystore.CatalogEntry{}, errors.Join(entitystore.ErrScanningDBRowFailed, scanErr)
	}

	parsedID, parseErr := uuid.Parse(id)
	if parseErr != nil {
		return entitystore.CatalogEntry{}, errors.Join(entitystore.ErrScanningDBRowFailed, parseErr)
	}

	entry.ID = parsedID
	entry.CoverType = entitystore.CoverType(coverType)
	entry.Condition = entitystore.Condition(condition)
	entry.Status = entitystore.BookStatus(status)

	return entry, nil
}

func (s *Store) queryReaders(ctx context.Context, observer *operationObserver, sqlQuery string) ([]entitystore.Reader, error) {
	rows, queryErr := s.query(ctx, observer, sqlQuery)
	if queryErr != nil {
		return nil, queryErr
	}
	defer s.closeRows(ctx, rows)

	readers := make([]entitystore.Reader, 0)

	for rows.Next() {
		var reader entitystore.Reader

		scanErr := rows.Scan(&reader.Phone, &reader.FirstName, &reader.LastName, &reader.BirthDate, &reader.RegistrationDate)
		if scanErr != nil {
			return nil, observer.finishError(logMsgScanRowFailed, errorTypeScan, errors.Join(entitystore.ErrScanningDBRowFailed, scanErr))
		}

		readers = append(readers, reader)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, observer.finishError(logMsgDBQueryFailed, errorTypeQuery, errors.Join(entitystore.ErrQueryingFailed, rowsErr))
	}

	return readers, nil
}

// queryCounts scans a single row of numColumns integer columns.
func (s *Store) queryCounts(ctx context.Context, observer *operationObserver, sqlQuery string, numColumns int) ([]int64, error) {
	rows, queryErr := s.query(ctx, observer, sqlQuery)
	if queryErr != nil {
		return nil, queryErr
	}
	defer s.closeRows(ctx, rows)

	counts := make([]int64, numColumns)
	dest := make([]any, numColumns)
	for i := range counts {
		dest[i] = &counts[i]
	}

	if rows.Next() {
		if scanErr := rows.Scan(dest...); scanErr != nil {
			return nil, observer.finishError(logMsgScanRowFailed, errorTypeScan, errors.Join(entitystore.ErrScanningDBRowFailed, scanErr))
		}
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, observer.finishError(logMsgDBQueryFailed, errorTypeQuery, errors.Join(entitystore.ErrQueryingFailed, rowsErr))
	}

	return counts, nil
}
