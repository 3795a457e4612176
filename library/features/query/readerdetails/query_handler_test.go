package readerdetails_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/entitystore/memoryengine"
	"github.com/AntonStoeckl/library-lending-go/library/features/query/readerdetails"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
	. "github.com/AntonStoeckl/library-lending-go/testutil/helper" //nolint:revive
)

func Test_QueryHandler_Handle_CountsBorrowedBooks(t *testing.T) {
	// arrange
	ctx, store := setupTestEnvironment(t)
	GivenReader(ctx, t, store, FixtureReader(FixturePhone))
	GivenBook(ctx, t, store, FixtureBorrowedBook(GivenUniqueID(t), FixturePhone, FakeToday))
	GivenBook(ctx, t, store, FixtureBorrowedBook(GivenUniqueID(t), FixturePhone, FakeToday))
	GivenBook(ctx, t, store, FixtureBook(GivenUniqueID(t)))
	handler := readerdetails.NewQueryHandler(store)

	// act
	result, err := handler.Handle(ctx, readerdetails.BuildQuery(FixturePhone))

	// assert
	require.NoError(t, err)
	assert.Equal(t, "Владимир", result.FirstName)
	assert.Equal(t, 2, result.BooksBorrowed)
}

func Test_QueryHandler_Handle_Error_NotFound(t *testing.T) {
	// arrange
	ctx, store := setupTestEnvironment(t)
	handler := readerdetails.NewQueryHandler(store)

	// act
	_, err := handler.Handle(ctx, readerdetails.BuildQuery(FixturePhone))

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.EqualError(t, err, "reader 79991112233 not found")
}

func setupTestEnvironment(t *testing.T) (context.Context, *memoryengine.Store) {
	t.Helper()

	store, err := memoryengine.NewStore()
	require.NoError(t, err)

	return context.Background(), store
}
