package returnbook_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/entitystore"
	"github.com/AntonStoeckl/library-lending-go/entitystore/memoryengine"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/lendbook"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/returnbook"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
	. "github.com/AntonStoeckl/library-lending-go/testutil/helper" //nolint:revive
)

func Test_CommandHandler_Handle_Success_LendAndReturn(t *testing.T) {
	// arrange
	ctx, store := setupTestEnvironment(t)
	GivenReader(ctx, t, store, FixtureReader(FixturePhone))
	bookID := GivenUniqueID(t)
	GivenBook(ctx, t, store, FixtureBook(bookID))

	_, err := lendbook.NewCommandHandler(store).Handle(ctx, lendbook.BuildCommand(bookID, FixturePhone, FakeToday))
	require.NoError(t, err, "error in arranging test data")

	handler := returnbook.NewCommandHandler(store)

	// act
	result, err := handler.Handle(ctx, returnbook.BuildCommand(bookID))

	// assert
	require.NoError(t, err)
	assert.Equal(t, bookID, result.BookID)

	stored, _, err := store.FindBook(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, entitystore.StatusAvailable, stored.Status)
	assert.Nil(t, stored.BorrowerPhone)
	assert.Nil(t, stored.BorrowedDate)
	assert.Nil(t, stored.BorrowerFirstName)

	count, err := store.CountBooksBorrowedBy(ctx, FixturePhone)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func Test_CommandHandler_Handle_Success_AlreadyAvailable(t *testing.T) {
	// arrange
	ctx, store := setupTestEnvironment(t)
	bookID := GivenUniqueID(t)
	GivenBook(ctx, t, store, FixtureBook(bookID))
	handler := returnbook.NewCommandHandler(store)

	// act
	_, err := handler.Handle(ctx, returnbook.BuildCommand(bookID))

	// assert
	require.NoError(t, err)

	stored, _, err := store.FindBook(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, entitystore.StatusAvailable, stored.Status)
}

func Test_CommandHandler_Handle_Error_NotFound(t *testing.T) {
	// arrange
	ctx, store := setupTestEnvironment(t)
	handler := returnbook.NewCommandHandler(store)

	// act
	_, err := handler.Handle(ctx, returnbook.BuildCommand(GivenUniqueID(t)))

	// assert
	assert.ErrorIs(t, err, core.ErrBookNotFound)
}

func setupTestEnvironment(t *testing.T) (context.Context, *memoryengine.Store) {
	t.Helper()

	store, err := memoryengine.NewStore()
	require.NoError(t, err)

	return context.Background(), store
}
