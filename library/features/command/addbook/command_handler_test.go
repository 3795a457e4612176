package addbook_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/entitystore"
	"github.com/AntonStoeckl/library-lending-go/entitystore/memoryengine"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/addbook"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
	. "github.com/AntonStoeckl/library-lending-go/testutil/helper" //nolint:revive
)

func Test_CommandHandler_Handle_Success_AppliesDefaults(t *testing.T) {
	// arrange
	ctx, store := setupTestEnvironment(t)
	handler := addbook.NewCommandHandler(store)
	bookID := GivenUniqueID(t)

	// act
	result, err := handler.Handle(ctx, addbook.BuildCommand(
		bookID,
		core.NewBook{Title: " Дубровский ", Author: "А. Пушкин"},
		FakeToday,
	))

	// assert
	require.NoError(t, err)
	assert.Equal(t, bookID, result.BookID)

	stored, found, err := store.FindBook(ctx, bookID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Дубровский", stored.Title)
	assert.Equal(t, entitystore.StatusAvailable, stored.Status)
	assert.Equal(t, entitystore.CoverHard, stored.CoverType)
	assert.Equal(t, entitystore.ConditionGood, stored.Condition)
	assert.Equal(t, core.DefaultGenre, stored.Genre)
	assert.Equal(t, FakeToday.Year(), stored.PublicationYear)
	assert.Nil(t, stored.BorrowerPhone)
	assert.Nil(t, stored.BorrowedDate)
}

func Test_CommandHandler_Handle_Error_ValidationFailed(t *testing.T) {
	// arrange
	ctx, store := setupTestEnvironment(t)
	handler := addbook.NewCommandHandler(store)
	bookID := GivenUniqueID(t)

	// act
	_, err := handler.Handle(ctx, addbook.BuildCommand(bookID, core.NewBook{Title: "", Author: "А. Пушкин"}, FakeToday))

	// assert
	assert.ErrorIs(t, err, core.ErrValidationFailed)

	_, found, findErr := store.FindBook(ctx, bookID)
	require.NoError(t, findErr)
	assert.False(t, found, "nothing must be stored when validation fails")
}

func Test_CommandHandler_Handle_Success_AddedAsBorrowed(t *testing.T) {
	// arrange
	ctx, store := setupTestEnvironment(t)
	GivenReader(ctx, t, store, FixtureReader(FixturePhone))
	handler := addbook.NewCommandHandler(store)
	bookID := GivenUniqueID(t)
	status := string(entitystore.StatusBorrowed)
	phone := FixturePhone

	// act
	_, err := handler.Handle(ctx, addbook.BuildCommand(
		bookID,
		core.NewBook{Title: "Дубровский", Author: "А. Пушкин", Status: &status, BorrowerPhone: &phone},
		FakeToday,
	))

	// assert
	require.NoError(t, err)

	stored, _, err := store.FindBook(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, entitystore.StatusBorrowed, stored.Status)
	require.NotNil(t, stored.BorrowedDate)
	assert.Equal(t, core.ToDate(FakeToday), *stored.BorrowedDate)
	require.NotNil(t, stored.BorrowerFirstName)
	assert.Equal(t, "Владимир", *stored.BorrowerFirstName)
}

func Test_CommandHandler_Handle_Error_AddedAsBorrowedByUnknownReader(t *testing.T) {
	// arrange
	ctx, store := setupTestEnvironment(t)
	handler := addbook.NewCommandHandler(store)
	status := string(entitystore.StatusBorrowed)
	phone := FixturePhone

	// act
	_, err := handler.Handle(ctx, addbook.BuildCommand(
		GivenUniqueID(t),
		core.NewBook{Title: "Дубровский", Author: "А. Пушкин", Status: &status, BorrowerPhone: &phone},
		FakeToday,
	))

	// assert
	assert.ErrorIs(t, err, core.ErrReaderNotFound)
}

func Test_CommandHandler_Handle_Error_StoreFailure(t *testing.T) {
	// arrange
	ctx, store := setupTestEnvironment(t)
	handler := addbook.NewCommandHandler(store)
	canceledCtx, cancel := context.WithCancel(ctx)
	cancel()

	// act
	_, err := handler.Handle(canceledCtx, addbook.BuildCommand(
		GivenUniqueID(t),
		core.NewBook{Title: "Дубровский", Author: "А. Пушкин"},
		FakeToday,
	))

	// assert
	assert.ErrorIs(t, err, core.ErrStoreFailure)
	assert.ErrorIs(t, err, context.Canceled)
}

func setupTestEnvironment(t *testing.T) (context.Context, *memoryengine.Store) {
	t.Helper()

	store, err := memoryengine.NewStore()
	require.NoError(t, err)

	return context.Background(), store
}
