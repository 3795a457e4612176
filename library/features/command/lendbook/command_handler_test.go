package lendbook_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/entitystore"
	"github.com/AntonStoeckl/library-lending-go/entitystore/memoryengine"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/lendbook"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
	. "github.com/AntonStoeckl/library-lending-go/testutil/helper" //nolint:revive
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// arrange
	ctx, store := setupTestEnvironment(t)
	GivenReader(ctx, t, store, FixtureReader(FixturePhone))
	bookID := GivenUniqueID(t)
	GivenBook(ctx, t, store, FixtureBook(bookID))
	handler := lendbook.NewCommandHandler(store)

	// act
	result, err := handler.Handle(ctx, lendbook.BuildCommand(bookID, FixturePhone, FakeToday))

	// assert
	require.NoError(t, err)
	assert.Equal(t, bookID, result.BookID)
	assert.Equal(t, time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC), result.BorrowedDate)
	assert.Equal(t, time.Date(2025, time.April, 3, 0, 0, 0, 0, time.UTC), result.DueDate)

	stored, _, err := store.FindBook(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, entitystore.StatusBorrowed, stored.Status)
	require.NotNil(t, stored.BorrowerPhone)
	assert.Equal(t, FixturePhone, *stored.BorrowerPhone)
	require.NotNil(t, stored.BorrowerLastName)
	assert.Equal(t, "Дубровский", *stored.BorrowerLastName)
}

func Test_CommandHandler_Handle_Error_UnknownReaderLeavesBookUnchanged(t *testing.T) {
	// arrange
	ctx, store := setupTestEnvironment(t)
	bookID := GivenUniqueID(t)
	GivenBook(ctx, t, store, FixtureBook(bookID))
	handler := lendbook.NewCommandHandler(store)

	// act
	_, err := handler.Handle(ctx, lendbook.BuildCommand(bookID, "70000000000", FakeToday))

	// assert
	assert.ErrorIs(t, err, core.ErrReaderNotFound)

	stored, _, findErr := store.FindBook(ctx, bookID)
	require.NoError(t, findErr)
	assert.Equal(t, entitystore.StatusAvailable, stored.Status)
	assert.Nil(t, stored.BorrowerPhone)
	assert.Nil(t, stored.BorrowedDate)
}

func Test_CommandHandler_Handle_Error_AlreadyBorrowed(t *testing.T) {
	// arrange
	ctx, store := setupTestEnvironment(t)
	GivenReader(ctx, t, store, FixtureReader(FixturePhone))
	otherPhone := "79990000000"
	GivenReader(ctx, t, store, FixtureReader(otherPhone))
	bookID := GivenUniqueID(t)
	GivenBook(ctx, t, store, FixtureBorrowedBook(bookID, otherPhone, FakeToday.AddDate(0, 0, -3)))
	handler := lendbook.NewCommandHandler(store)

	// act
	_, err := handler.Handle(ctx, lendbook.BuildCommand(bookID, FixturePhone, FakeToday))

	// assert
	assert.ErrorIs(t, err, core.ErrBookUnavailable)

	stored, _, findErr := store.FindBook(ctx, bookID)
	require.NoError(t, findErr)
	require.NotNil(t, stored.BorrowerPhone)
	assert.Equal(t, otherPhone, *stored.BorrowerPhone, "the first loan stays untouched")
}

func Test_CommandHandler_Handle_Error_BookDoesNotExist(t *testing.T) {
	// arrange
	ctx, store := setupTestEnvironment(t)
	GivenReader(ctx, t, store, FixtureReader(FixturePhone))
	handler := lendbook.NewCommandHandler(store)

	// act
	_, err := handler.Handle(ctx, lendbook.BuildCommand(GivenUniqueID(t), FixturePhone, FakeToday))

	// assert
	assert.ErrorIs(t, err, core.ErrBookUnavailable)
}

func Test_CommandHandler_Handle_ConcurrentLendingHasExactlyOneWinner(t *testing.T) {
	// arrange
	ctx, store := setupTestEnvironment(t)
	bookID := GivenUniqueID(t)
	GivenBook(ctx, t, store, FixtureBook(bookID))
	handler := lendbook.NewCommandHandler(store)

	phones := []string{"79990000001", "79990000002", "79990000003", "79990000004", "79990000005"}
	for _, phone := range phones {
		GivenReader(ctx, t, store, FixtureReader(phone))
	}

	errs := make([]error, len(phones))

	var wg sync.WaitGroup

	// act
	for i, phone := range phones {
		wg.Add(1)

		go func(i int, phone string) {
			defer wg.Done()

			_, errs[i] = handler.Handle(ctx, lendbook.BuildCommand(bookID, phone, FakeToday))
		}(i, phone)
	}

	wg.Wait()

	// assert
	winner := ""

	for i, err := range errs {
		if err == nil {
			assert.Empty(t, winner, "only one lending may succeed")
			winner = phones[i]

			continue
		}

		assert.ErrorIs(t, err, core.ErrBookUnavailable)
	}

	require.NotEmpty(t, winner)

	stored, _, err := store.FindBook(ctx, bookID)
	require.NoError(t, err)
	require.NotNil(t, stored.BorrowerPhone)
	assert.Equal(t, winner, *stored.BorrowerPhone)
}

func setupTestEnvironment(t *testing.T) (context.Context, *memoryengine.Store) {
	t.Helper()

	store, err := memoryengine.NewStore()
	require.NoError(t, err)

	return context.Background(), store
}
