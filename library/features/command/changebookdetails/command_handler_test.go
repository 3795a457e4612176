package changebookdetails_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/entitystore"
	"github.com/AntonStoeckl/library-lending-go/entitystore/memoryengine"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/changebookdetails"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
	. "github.com/AntonStoeckl/library-lending-go/testutil/helper" //nolint:revive
)

func Test_CommandHandler_Handle_Success_MergesSuppliedFields(t *testing.T) {
	// arrange
	ctx, store := setupTestEnvironment(t)
	bookID := GivenUniqueID(t)
	GivenBook(ctx, t, store, FixtureBook(bookID))
	handler := changebookdetails.NewCommandHandler(store)

	genre := "повесть"
	condition := "average"

	// act
	result, err := handler.Handle(ctx, changebookdetails.BuildCommand(
		bookID,
		core.BookPatch{Genre: &genre, Condition: &condition},
		FakeToday,
	))

	// assert
	require.NoError(t, err)
	assert.Equal(t, bookID, result.BookID)

	stored, _, err := store.FindBook(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, "повесть", stored.Genre)
	assert.Equal(t, entitystore.ConditionAverage, stored.Condition)
	assert.Equal(t, "Дубровский", stored.Title, "unsupplied fields keep their values")
	assert.Equal(t, "А. Пушкин", stored.Author)
	assert.Equal(t, 160, stored.PageCount)
}

func Test_CommandHandler_Handle_Success_DoesNotTouchLoanData(t *testing.T) {
	// arrange
	ctx, store := setupTestEnvironment(t)
	GivenReader(ctx, t, store, FixtureReader(FixturePhone))
	bookID := GivenUniqueID(t)
	GivenBook(ctx, t, store, FixtureBorrowedBook(bookID, FixturePhone, FakeToday))
	handler := changebookdetails.NewCommandHandler(store)

	title := "Капитанская дочка"

	// act
	_, err := handler.Handle(ctx, changebookdetails.BuildCommand(bookID, core.BookPatch{Title: &title}, FakeToday))

	// assert
	require.NoError(t, err)

	stored, _, err := store.FindBook(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, "Капитанская дочка", stored.Title)
	assert.Equal(t, entitystore.StatusBorrowed, stored.Status)
	require.NotNil(t, stored.BorrowerPhone)
	assert.Equal(t, FixturePhone, *stored.BorrowerPhone)
}

func Test_CommandHandler_Handle_Error_EmptyTitle(t *testing.T) {
	// arrange
	ctx, store := setupTestEnvironment(t)
	bookID := GivenUniqueID(t)
	GivenBook(ctx, t, store, FixtureBook(bookID))
	handler := changebookdetails.NewCommandHandler(store)

	title := "   "

	// act
	_, err := handler.Handle(ctx, changebookdetails.BuildCommand(bookID, core.BookPatch{Title: &title}, FakeToday))

	// assert
	assert.ErrorIs(t, err, core.ErrValidationFailed)

	stored, _, findErr := store.FindBook(ctx, bookID)
	require.NoError(t, findErr)
	assert.Equal(t, "Дубровский", stored.Title)
}

func Test_CommandHandler_Handle_Error_NotFound(t *testing.T) {
	// arrange
	ctx, store := setupTestEnvironment(t)
	handler := changebookdetails.NewCommandHandler(store)

	// act
	_, err := handler.Handle(ctx, changebookdetails.BuildCommand(GivenUniqueID(t), core.BookPatch{}, FakeToday))

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func setupTestEnvironment(t *testing.T) (context.Context, *memoryengine.Store) {
	t.Helper()

	store, err := memoryengine.NewStore()
	require.NoError(t, err)

	return context.Background(), store
}
