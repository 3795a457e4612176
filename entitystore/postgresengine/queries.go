package postgresengine

import (
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/entitystore"
)

const (
	dialectPostgres      = "postgres"
	dateLayout           = "2006-01-02"
	aliasBooks           = "b"
	aliasReaders         = "r"
	colID                = "id"
	colTitle             = "title"
	colAuthor            = "author"
	colCoverType         = "cover_type"
	colPublicationYear   = "publication_year"
	colGenre             = "genre"
	colPageCount         = "page_count"
	colConditionState    = "condition_state"
	colStatus            = "status"
	colBorrowedDate      = "borrowed_date"
	colBorrowerPhone     = "borrower_phone"
	colPhone             = "phone"
	colFirstName         = "first_name"
	colLastName          = "last_name"
	colBirthDate         = "birth_date"
	colRegistrationDate  = "registration_date"
	aliasTotalBooks      = "total_books"
	aliasAvailableBooks  = "available_books"
	aliasBorrowedBooks   = "borrowed_books"
	aliasTotalReaders    = "total_readers"
	castText             = "TEXT"
	literalOne           = "1"
	literalExists        = "EXISTS ?"
	literalNotExists     = "NOT EXISTS ?"
)

type sqlQueryString = string

func (s *Store) builder() goqu.DialectWrapper {
	return goqu.Dialect(dialectPostgres)
}

func toSQL(stmt interface{ ToSQL() (string, []any, error) }) (sqlQueryString, error) {
	sqlQuery, _, toSQLErr := stmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(entitystore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func dateLiteral(t time.Time) string {
	return t.Format(dateLayout)
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}

	return *s
}

func nullableDate(t *time.Time) any {
	if t == nil {
		return nil
	}

	return dateLiteral(*t)
}

func (s *Store) bookColumns() []any {
	return []any{
		goqu.Cast(goqu.I(aliasBooks+"."+colID), castText),
		goqu.I(aliasBooks + "." + colTitle),
		goqu.I(aliasBooks + "." + colAuthor),
		goqu.I(aliasBooks + "." + colCoverType),
		goqu.I(aliasBooks + "." + colPublicationYear),
		goqu.I(aliasBooks + "." + colGenre),
		goqu.I(aliasBooks + "." + colPageCount),
		goqu.I(aliasBooks + "." + colConditionState),
		goqu.I(aliasBooks + "." + colStatus),
		goqu.I(aliasBooks + "." + colBorrowedDate),
		goqu.I(aliasBooks + "." + colBorrowerPhone),
		goqu.I(aliasReaders + "." + colFirstName),
		goqu.I(aliasReaders + "." + colLastName),
	}
}

func (s *Store) catalogSelect() *goqu.SelectDataset {
	return s.builder().
		From(goqu.T(s.booksTableName).As(aliasBooks)).
		LeftJoin(
			goqu.T(s.readersTableName).As(aliasReaders),
			goqu.On(goqu.I(aliasBooks+"."+colBorrowerPhone).Eq(goqu.I(aliasReaders+"."+colPhone))),
		).
		Select(s.bookColumns()...)
}

func (s *Store) buildListBooksQuery() (sqlQueryString, error) {
	return toSQL(s.catalogSelect().Order(goqu.I(aliasBooks + "." + colTitle).Asc()))
}

func (s *Store) buildFindBookQuery(id uuid.UUID) (sqlQueryString, error) {
	return toSQL(s.catalogSelect().Where(goqu.I(aliasBooks + "." + colID).Eq(id.String())))
}

func (s *Store) buildInsertBookQuery(book entitystore.Book) (sqlQueryString, error) {
	insertStmt := s.builder().
		Insert(s.booksTableName).
		Rows(goqu.Record{
			colID:              book.ID.String(),
			colTitle:           book.Title,
			colAuthor:          book.Author,
			colCoverType:       string(book.CoverType),
			colPublicationYear: book.PublicationYear,
			colGenre:           book.Genre,
			colPageCount:       book.PageCount,
			colConditionState:  string(book.Condition),
			colStatus:          string(book.Status),
			colBorrowedDate:    nullableDate(book.BorrowedDate),
			colBorrowerPhone:   nullableString(book.BorrowerPhone),
		})

	return toSQL(insertStmt)
}

// buildUpdateBookDetailsQuery sets only the supplied fields, the others keep their stored value.
// An empty patch still matches the row so that a missing book can be detected.
func (s *Store) buildUpdateBookDetailsQuery(id uuid.UUID, patch entitystore.BookDetailsPatch) (sqlQueryString, error) {
	record := goqu.Record{}

	if patch.Title != nil {
		record[colTitle] = *patch.Title
	}

	if patch.Author != nil {
		record[colAuthor] = *patch.Author
	}

	if patch.CoverType != nil {
		record[colCoverType] = string(*patch.CoverType)
	}

	if patch.PublicationYear != nil {
		record[colPublicationYear] = *patch.PublicationYear
	}

	if patch.Genre != nil {
		record[colGenre] = *patch.Genre
	}

	if patch.PageCount != nil {
		record[colPageCount] = *patch.PageCount
	}

	if patch.Condition != nil {
		record[colConditionState] = string(*patch.Condition)
	}

	if len(record) == 0 {
		record[colID] = goqu.I(colID)
	}

	updateStmt := s.builder().
		Update(s.booksTableName).
		Set(record).
		Where(goqu.C(colID).Eq(id.String()))

	return toSQL(updateStmt)
}

func (s *Store) buildDeleteBookQuery(id uuid.UUID) (sqlQueryString, error) {
	deleteStmt := s.builder().
		Delete(s.booksTableName).
		Where(goqu.C(colID).Eq(id.String())).
		Returning(goqu.C(colBorrowerPhone))

	return toSQL(deleteStmt)
}

func (s *Store) readerExists(phone string) exp.LiteralExpression {
	subQuery := s.builder().
		From(s.readersTableName).
		Select(goqu.L(literalOne)).
		Where(goqu.C(colPhone).Eq(phone))

	return goqu.L(literalExists, subQuery)
}

func (s *Store) noBookBorrowedBy(phone string) exp.LiteralExpression {
	subQuery := s.builder().
		From(s.booksTableName).
		Select(goqu.L(literalOne)).
		Where(goqu.C(colBorrowerPhone).Eq(phone))

	return goqu.L(literalNotExists, subQuery)
}

// buildLendBookQuery is a compare-and-set statement: it only matches an available book,
// and only while the reader exists, so the affected row count decides the outcome.
func (s *Store) buildLendBookQuery(id uuid.UUID, phone string, borrowedOn time.Time) (sqlQueryString, error) {
	updateStmt := s.builder().
		Update(s.booksTableName).
		Set(goqu.Record{
			colStatus:        string(entitystore.StatusBorrowed),
			colBorrowerPhone: phone,
			colBorrowedDate:  dateLiteral(borrowedOn),
		}).
		Where(
			goqu.C(colID).Eq(id.String()),
			goqu.C(colStatus).Eq(string(entitystore.StatusAvailable)),
			s.readerExists(phone),
		)

	return toSQL(updateStmt)
}

func (s *Store) buildReturnBookQuery(id uuid.UUID) (sqlQueryString, error) {
	updateStmt := s.builder().
		Update(s.booksTableName).
		Set(goqu.Record{
			colStatus:        string(entitystore.StatusAvailable),
			colBorrowerPhone: nil,
			colBorrowedDate:  nil,
		}).
		Where(goqu.C(colID).Eq(id.String()))

	return toSQL(updateStmt)
}

func (s *Store) buildListLoansQuery() (sqlQueryString, error) {
	selectStmt := s.builder().
		From(goqu.T(s.booksTableName).As(aliasBooks)).
		InnerJoin(
			goqu.T(s.readersTableName).As(aliasReaders),
			goqu.On(goqu.I(aliasBooks+"."+colBorrowerPhone).Eq(goqu.I(aliasReaders+"."+colPhone))),
		).
		Select(
			goqu.Cast(goqu.I(aliasBooks+"."+colID), castText),
			goqu.I(aliasBooks+"."+colTitle),
			goqu.I(aliasBooks+"."+colAuthor),
			goqu.I(aliasBooks+"."+colBorrowedDate),
			goqu.I(aliasReaders+"."+colPhone),
			goqu.I(aliasReaders+"."+colFirstName),
			goqu.I(aliasReaders+"."+colLastName),
		).
		Where(goqu.I(aliasBooks + "." + colStatus).Eq(string(entitystore.StatusBorrowed))).
		Order(goqu.I(aliasBooks+"."+colBorrowedDate).Asc(), goqu.I(aliasBooks+"."+colTitle).Asc())

	return toSQL(selectStmt)
}

func (s *Store) buildCountStatsQuery() (sqlQueryString, error) {
	countBooks := func(status entitystore.BookStatus) *goqu.SelectDataset {
		ds := s.builder().From(s.booksTableName).Select(goqu.COUNT(goqu.Star()))
		if status != "" {
			ds = ds.Where(goqu.C(colStatus).Eq(string(status)))
		}

		return ds
	}

	countReaders := s.builder().From(s.readersTableName).Select(goqu.COUNT(goqu.Star()))

	selectStmt := s.builder().Select(
		goqu.L("?", countBooks("")).As(aliasTotalBooks),
		goqu.L("?", countBooks(entitystore.StatusAvailable)).As(aliasAvailableBooks),
		goqu.L("?", countBooks(entitystore.StatusBorrowed)).As(aliasBorrowedBooks),
		goqu.L("?", countReaders).As(aliasTotalReaders),
	)

	return toSQL(selectStmt)
}

func (s *Store) readerColumns() []any {
	return []any{colPhone, colFirstName, colLastName, colBirthDate, colRegistrationDate}
}

func (s *Store) buildInsertReaderQuery(reader entitystore.Reader) (sqlQueryString, error) {
	insertStmt := s.builder().
		Insert(s.readersTableName).
		Rows(goqu.Record{
			colPhone:            reader.Phone,
			colFirstName:        reader.FirstName,
			colLastName:         reader.LastName,
			colBirthDate:        dateLiteral(reader.BirthDate),
			colRegistrationDate: dateLiteral(reader.RegistrationDate),
		})

	return toSQL(insertStmt)
}

func (s *Store) buildFindReaderQuery(phone string) (sqlQueryString, error) {
	selectStmt := s.builder().
		From(s.readersTableName).
		Select(s.readerColumns()...).
		Where(goqu.C(colPhone).Eq(phone))

	return toSQL(selectStmt)
}

func (s *Store) buildListReadersQuery() (sqlQueryString, error) {
	selectStmt := s.builder().
		From(s.readersTableName).
		Select(s.readerColumns()...).
		Order(goqu.C(colRegistrationDate).Desc(), goqu.C(colLastName).Asc())

	return toSQL(selectStmt)
}

func (s *Store) buildCountBooksBorrowedByQuery(phone string) (sqlQueryString, error) {
	selectStmt := s.builder().
		From(s.booksTableName).
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.C(colBorrowerPhone).Eq(phone))

	return toSQL(selectStmt)
}

// buildDeleteReaderWithoutLoansQuery only matches while no book references the reader.
func (s *Store) buildDeleteReaderWithoutLoansQuery(phone string) (sqlQueryString, error) {
	deleteStmt := s.builder().
		Delete(s.readersTableName).
		Where(
			goqu.C(colPhone).Eq(phone),
			s.noBookBorrowedBy(phone),
		)

	return toSQL(deleteStmt)
}
