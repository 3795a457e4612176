package postgresengine

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/entitystore"
)

const queryTestPhone = "79991112233"

func newQueryTestStore(t *testing.T, options ...Option) *Store {
	t.Helper()

	s, err := newStore(nil, options...)
	require.NoError(t, err)

	return s
}

func Test_BuildLendBookQuery_IsGuardedByStatusAndReaderExistence(t *testing.T) {
	// arrange
	s := newQueryTestStore(t)
	id := uuid.New()

	// act
	sqlQuery, err := s.buildLendBookQuery(id, queryTestPhone, time.Date(2025, time.March, 20, 15, 30, 0, 0, time.UTC))

	// assert
	require.NoError(t, err)
	assert.Contains(t, sqlQuery, `UPDATE "books"`)
	assert.Contains(t, sqlQuery, `"status"='borrowed'`)
	assert.Contains(t, sqlQuery, `"borrowed_date"='2025-03-20'`)
	assert.Contains(t, sqlQuery, `"status" = 'available'`)
	assert.Contains(t, sqlQuery, `"id" = '`+id.String()+`'`)
	assert.Contains(t, sqlQuery, "EXISTS")
	assert.Contains(t, sqlQuery, `FROM "readers"`)
	assert.Contains(t, sqlQuery, `"phone" = '`+queryTestPhone+`'`)
}

func Test_BuildDeleteReaderWithoutLoansQuery_IsGuardedByOpenLoans(t *testing.T) {
	// arrange
	s := newQueryTestStore(t)

	// act
	sqlQuery, err := s.buildDeleteReaderWithoutLoansQuery(queryTestPhone)

	// assert
	require.NoError(t, err)
	assert.Contains(t, sqlQuery, `DELETE FROM "readers"`)
	assert.Contains(t, sqlQuery, "NOT EXISTS")
	assert.Contains(t, sqlQuery, `FROM "books"`)
	assert.Contains(t, sqlQuery, `"borrower_phone" = '`+queryTestPhone+`'`)
}

func Test_BuildUpdateBookDetailsQuery_SetsOnlySuppliedFields(t *testing.T) {
	// arrange
	s := newQueryTestStore(t)
	title := "Капитанская дочка"
	pageCount := 200
	patch := entitystore.BookDetailsPatch{Title: &title, PageCount: &pageCount}

	// act
	sqlQuery, err := s.buildUpdateBookDetailsQuery(uuid.New(), patch)

	// assert
	require.NoError(t, err)
	assert.Contains(t, sqlQuery, `"title"='Капитанская дочка'`)
	assert.Contains(t, sqlQuery, `"page_count"=200`)
	assert.NotContains(t, sqlQuery, `"author"`)
	assert.NotContains(t, sqlQuery, `"status"`)
	assert.NotContains(t, sqlQuery, `"borrower_phone"`)
}

func Test_BuildUpdateBookDetailsQuery_EmptyPatchStillMatchesTheRow(t *testing.T) {
	// arrange
	s := newQueryTestStore(t)
	id := uuid.New()

	// act
	sqlQuery, err := s.buildUpdateBookDetailsQuery(id, entitystore.BookDetailsPatch{})

	// assert
	require.NoError(t, err)
	assert.Contains(t, sqlQuery, `UPDATE "books" SET "id"="id"`)
	assert.Contains(t, sqlQuery, id.String())
}

func Test_BuildReturnBookQuery_ClearsLoanData(t *testing.T) {
	// arrange
	s := newQueryTestStore(t)

	// act
	sqlQuery, err := s.buildReturnBookQuery(uuid.New())

	// assert
	require.NoError(t, err)
	assert.Contains(t, sqlQuery, `"borrowed_date"=NULL`)
	assert.Contains(t, sqlQuery, `"borrower_phone"=NULL`)
	assert.Contains(t, sqlQuery, `"status"='available'`)
}

func Test_BuildQueries_UseConfiguredTableNames(t *testing.T) {
	// arrange
	s := newQueryTestStore(t, WithBooksTableName("library_books"), WithReadersTableName("library_readers"))

	// act
	listBooks, listBooksErr := s.buildListBooksQuery()
	listLoans, listLoansErr := s.buildListLoansQuery()
	lendBook, lendBookErr := s.buildLendBookQuery(uuid.New(), queryTestPhone, time.Now())
	stats, statsErr := s.buildCountStatsQuery()

	// assert
	require.NoError(t, listBooksErr)
	require.NoError(t, listLoansErr)
	require.NoError(t, lendBookErr)
	require.NoError(t, statsErr)

	for _, sqlQuery := range []string{listBooks, listLoans, lendBook, stats} {
		assert.Contains(t, sqlQuery, `"library_books"`)
		assert.Contains(t, sqlQuery, `"library_readers"`)
		assert.NotContains(t, sqlQuery, `"books"`)
		assert.NotContains(t, sqlQuery, `"readers"`)
	}
}

func Test_BuildListQueries_Ordering(t *testing.T) {
	// arrange
	s := newQueryTestStore(t)

	// act
	listBooks, listBooksErr := s.buildListBooksQuery()
	listReaders, listReadersErr := s.buildListReadersQuery()
	listLoans, listLoansErr := s.buildListLoansQuery()

	// assert
	require.NoError(t, listBooksErr)
	require.NoError(t, listReadersErr)
	require.NoError(t, listLoansErr)
	assert.Contains(t, listBooks, `ORDER BY "b"."title" ASC`)
	assert.Contains(t, listReaders, `ORDER BY "registration_date" DESC, "last_name" ASC`)
	assert.Contains(t, listLoans, `ORDER BY "b"."borrowed_date" ASC`)
	assert.Contains(t, listLoans, `INNER JOIN "readers"`)
	assert.Contains(t, listBooks, `LEFT JOIN "readers"`)
}

func Test_BuildCountStatsQuery_SelectsAllCounters(t *testing.T) {
	// arrange
	s := newQueryTestStore(t)

	// act
	sqlQuery, err := s.buildCountStatsQuery()

	// assert
	require.NoError(t, err)
	assert.Contains(t, sqlQuery, `"total_books"`)
	assert.Contains(t, sqlQuery, `"available_books"`)
	assert.Contains(t, sqlQuery, `"borrowed_books"`)
	assert.Contains(t, sqlQuery, `"total_readers"`)
	assert.Contains(t, sqlQuery, "COUNT(*)")
}
