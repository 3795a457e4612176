package postgresengine_test

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/entitystore"
	"github.com/AntonStoeckl/library-lending-go/entitystore/postgresengine"
	. "github.com/AntonStoeckl/library-lending-go/testutil/helper"                 //nolint:revive
	. "github.com/AntonStoeckl/library-lending-go/testutil/helper/postgreswrapper" //nolint:revive
)

const (
	otherPhone = "79991112244"
	dateLayout = "2006-01-02"
)

func setupTestEnvironment(t *testing.T, options ...postgresengine.Option) (context.Context, *postgresengine.Store) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	wrapper := CreateWrapperWithTestConfig(t, options...)
	CleanUp(t, wrapper)

	t.Cleanup(func() {
		cancel()
		wrapper.Close()
	})

	return entitystore.WithStrongConsistency(ctx), wrapper.GetStore()
}

func Test_InsertBook_FindBook_JoinsTheBorrower(t *testing.T) {
	// arrange
	ctx, store := setupTestEnvironment(t)
	bookID := GivenUniqueID(t)
	GivenReader(ctx, t, store, FixtureReader(FixturePhone))
	GivenBook(ctx, t, store, FixtureBorrowedBook(bookID, FixturePhone, FakeToday))

	// act
	entry, found, err := store.FindBook(ctx, bookID)

	// assert
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Дубровский", entry.Title)
	assert.Equal(t, entitystore.StatusBorrowed, entry.Status)
	require.NotNil(t, entry.BorrowerPhone)
	assert.Equal(t, FixturePhone, *entry.BorrowerPhone)
	require.NotNil(t, entry.BorrowedDate)
	assert.Equal(t, "2025-03-20", entry.BorrowedDate.Format(dateLayout))
	require.NotNil(t, entry.BorrowerFirstName)
	assert.Equal(t, "Владимир", *entry.BorrowerFirstName)
}

func Test_FindBook_ReportsMissingBook(t *testing.T) {
	// arrange
	ctx, store := setupTestEnvironment(t)

	// act
	_, found, err := store.FindBook(ctx, GivenUniqueID(t))

	// assert
	assert.NoError(t, err)
	assert.False(t, found)
}

func Test_InsertReader_DuplicatePhone_YieldsDuplicateKey(t *testing.T) {
	// arrange
	ctx, store := setupTestEnvironment(t)
	GivenReader(ctx, t, store, FixtureReader(FixturePhone))

	// act
	err := store.InsertReader(ctx, FixtureReader(FixturePhone))

	// assert
	assert.ErrorIs(t, err, entitystore.ErrDuplicateKey)
}

func Test_LendBook_OnlyMatchesAvailableBooksOfExistingReaders(t *testing.T) {
	// arrange
	ctx, store := setupTestEnvironment(t)
	bookID := GivenUniqueID(t)
	GivenReader(ctx, t, store, FixtureReader(FixturePhone))
	GivenReader(ctx, t, store, FixtureReader(otherPhone))
	GivenBook(ctx, t, store, FixtureBook(bookID))

	// act
	unknownReaderLent, unknownReaderErr := store.LendBook(ctx, bookID, "79990000000", FakeToday)
	firstLent, firstErr := store.LendBook(ctx, bookID, FixturePhone, FakeToday)
	secondLent, secondErr := store.LendBook(ctx, bookID, otherPhone, FakeToday)

	// assert
	require.NoError(t, unknownReaderErr)
	require.NoError(t, firstErr)
	require.NoError(t, secondErr)
	assert.False(t, unknownReaderLent)
	assert.True(t, firstLent)
	assert.False(t, secondLent)

	entry, _, err := store.FindBook(ctx, bookID)
	require.NoError(t, err)
	require.NotNil(t, entry.BorrowerPhone)
	assert.Equal(t, FixturePhone, *entry.BorrowerPhone)
}

func Test_LendBook_ExactlyOneConcurrentCallWins(t *testing.T) {
	// arrange
	ctx, store := setupTestEnvironment(t)
	bookID := GivenUniqueID(t)
	phones := []string{"79991110001", "79991110002", "79991110003", "79991110004", "79991110005"}
	for _, phone := range phones {
		GivenReader(ctx, t, store, FixtureReader(phone))
	}
	GivenBook(ctx, t, store, FixtureBook(bookID))

	var wins atomic.Int32
	var wg sync.WaitGroup

	// act
	for _, phone := range phones {
		wg.Add(1)
		go func(phone string) {
			defer wg.Done()

			lent, err := store.LendBook(ctx, bookID, phone, FakeToday)
			assert.NoError(t, err)
			if lent {
				wins.Add(1)
			}
		}(phone)
	}
	wg.Wait()

	// assert
	assert.Equal(t, int32(1), wins.Load())
}

func Test_ReturnBook_ClearsLoanAndAllowsReaderRemoval(t *testing.T) {
	// arrange
	ctx, store := setupTestEnvironment(t)
	bookID := GivenUniqueID(t)
	GivenReader(ctx, t, store, FixtureReader(FixturePhone))
	GivenBook(ctx, t, store, FixtureBorrowedBook(bookID, FixturePhone, FakeToday))

	// act
	deletedWhileLent, deleteWhileLentErr := store.DeleteReaderWithoutLoans(ctx, FixturePhone)
	returned, returnErr := store.ReturnBook(ctx, bookID)
	deletedAfterReturn, deleteAfterReturnErr := store.DeleteReaderWithoutLoans(ctx, FixturePhone)

	// assert
	require.NoError(t, deleteWhileLentErr)
	require.NoError(t, returnErr)
	require.NoError(t, deleteAfterReturnErr)
	assert.False(t, deletedWhileLent)
	assert.True(t, returned)
	assert.True(t, deletedAfterReturn)

	entry, _, err := store.FindBook(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, entitystore.StatusAvailable, entry.Status)
	assert.Nil(t, entry.BorrowerPhone)
	assert.Nil(t, entry.BorrowedDate)
}

func Test_UpdateBookDetails_KeepsUnsetFieldsAndLoanData(t *testing.T) {
	// arrange
	ctx, store := setupTestEnvironment(t)
	bookID := GivenUniqueID(t)
	GivenReader(ctx, t, store, FixtureReader(FixturePhone))
	GivenBook(ctx, t, store, FixtureBorrowedBook(bookID, FixturePhone, FakeToday))
	condition := entitystore.ConditionAverage
	pageCount := 176

	// act
	updated, err := store.UpdateBookDetails(ctx, bookID, entitystore.BookDetailsPatch{
		Condition: &condition,
		PageCount: &pageCount,
	})

	// assert
	require.NoError(t, err)
	assert.True(t, updated)

	entry, _, findErr := store.FindBook(ctx, bookID)
	require.NoError(t, findErr)
	assert.Equal(t, "Дубровский", entry.Title)
	assert.Equal(t, 176, entry.PageCount)
	assert.Equal(t, entitystore.ConditionAverage, entry.Condition)
	assert.Equal(t, entitystore.StatusBorrowed, entry.Status)
	require.NotNil(t, entry.BorrowerPhone)
	assert.Equal(t, FixturePhone, *entry.BorrowerPhone)
}

func Test_UpdateBookDetails_ReportsMissingBook(t *testing.T) {
	// arrange
	ctx, store := setupTestEnvironment(t)

	// act
	updated, err := store.UpdateBookDetails(ctx, GivenUniqueID(t), entitystore.BookDetailsPatch{})

	// assert
	assert.NoError(t, err)
	assert.False(t, updated)
}

func Test_DeleteBook_ReportsWhetherTheBookWasOnLoan(t *testing.T) {
	// arrange
	ctx, store := setupTestEnvironment(t)
	lentID := GivenUniqueID(t)
	availableID := GivenUniqueID(t)
	GivenReader(ctx, t, store, FixtureReader(FixturePhone))
	GivenBook(ctx, t, store, FixtureBorrowedBook(lentID, FixturePhone, FakeToday))
	GivenBook(ctx, t, store, FixtureBook(availableID))

	// act
	lentDeleted, lentWasBorrowed, lentErr := store.DeleteBook(ctx, lentID)
	availableDeleted, availableWasBorrowed, availableErr := store.DeleteBook(ctx, availableID)
	missingDeleted, _, missingErr := store.DeleteBook(ctx, availableID)

	// assert
	require.NoError(t, lentErr)
	require.NoError(t, availableErr)
	require.NoError(t, missingErr)
	assert.True(t, lentDeleted)
	assert.True(t, lentWasBorrowed)
	assert.True(t, availableDeleted)
	assert.False(t, availableWasBorrowed)
	assert.False(t, missingDeleted)
}

func Test_ListLoans_CountStats(t *testing.T) {
	// arrange
	ctx, store := setupTestEnvironment(t)
	GivenReader(ctx, t, store, FixtureReader(FixturePhone))
	GivenReader(ctx, t, store, FixtureReader(otherPhone))
	olderLoan := FixtureBorrowedBook(GivenUniqueID(t), FixturePhone, FakeToday.AddDate(0, 0, -20))
	newerLoan := FixtureBorrowedBook(GivenUniqueID(t), otherPhone, FakeToday.AddDate(0, 0, -3))
	GivenBook(ctx, t, store, newerLoan)
	GivenBook(ctx, t, store, olderLoan)
	GivenBook(ctx, t, store, FixtureBook(GivenUniqueID(t)))

	// act
	loans, loansErr := store.ListLoans(ctx)
	stats, statsErr := store.CountStats(ctx)
	borrowedByFixtureReader, countErr := store.CountBooksBorrowedBy(ctx, FixturePhone)

	// assert
	require.NoError(t, loansErr)
	require.NoError(t, statsErr)
	require.NoError(t, countErr)
	require.Len(t, loans, 2)
	assert.Equal(t, olderLoan.ID, loans[0].BookID)
	assert.Equal(t, "Владимир", loans[0].ReaderFirstName)
	assert.Equal(t, newerLoan.ID, loans[1].BookID)
	assert.Equal(t, entitystore.Stats{TotalBooks: 3, AvailableBooks: 1, BorrowedBooks: 2, TotalReaders: 2}, stats)
	assert.Equal(t, 1, borrowedByFixtureReader)
}

func Test_ListReaders_OrdersByRegistrationDateDescending(t *testing.T) {
	// arrange
	ctx, store := setupTestEnvironment(t)
	earlier := FixtureReader(FixturePhone)
	later := FixtureReader(otherPhone)
	later.RegistrationDate = earlier.RegistrationDate.AddDate(0, 1, 0)
	GivenReader(ctx, t, store, earlier)
	GivenReader(ctx, t, store, later)

	// act
	readers, err := store.ListReaders(ctx)

	// assert
	require.NoError(t, err)
	require.Len(t, readers, 2)
	assert.Equal(t, otherPhone, readers[0].Phone)
	assert.Equal(t, FixturePhone, readers[1].Phone)
	assert.Equal(t, "2025-02-10", readers[0].RegistrationDate.Format(dateLayout))
}

func Test_Observability_RecordsGuardRejections(t *testing.T) {
	// arrange
	logHandler := NewLogHandlerSpy(false)
	metrics := NewMetricsCollectorSpy(true)
	tracing := NewTracingCollectorSpy(true)
	ctx, store := setupTestEnvironment(
		t,
		postgresengine.WithLogger(slog.New(logHandler)),
		postgresengine.WithMetrics(metrics),
		postgresengine.WithTracing(tracing),
	)
	bookID := GivenUniqueID(t)
	GivenReader(ctx, t, store, FixtureReader(FixturePhone))
	GivenBook(ctx, t, store, FixtureBorrowedBook(bookID, FixturePhone, FakeToday))

	// act
	lent, err := store.LendBook(ctx, bookID, FixturePhone, FakeToday)

	// assert
	require.NoError(t, err)
	assert.False(t, lent)
	assert.True(t, metrics.HasCounterRecordForMetric("entitystore_guard_rejections_total").WithOperation("lend_book").Assert())
	assert.True(t, metrics.HasDurationRecordForMetric("entitystore_operation_duration_seconds").WithOperation("lend_book").WithStatus("success").Assert())
	assert.True(t, tracing.HasFinishedSpan("entitystore.lend_book", "success"))
	assert.True(t, logHandler.HasDebugLogWithDurationMS("executed sql for: lend_book"))
	assert.True(t, logHandler.HasLogWithAttr(slog.LevelInfo, "entitystore operation: lend_book", "book_id", bookID.String()))
}
