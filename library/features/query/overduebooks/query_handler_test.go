package overduebooks_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/entitystore/memoryengine"
	"github.com/AntonStoeckl/library-lending-go/library/features/query/overduebooks"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
	. "github.com/AntonStoeckl/library-lending-go/testutil/helper" //nolint:revive
)

func Test_QueryHandler_Handle_ReportsOnlyOverdueLoans(t *testing.T) {
	// arrange
	ctx, store := setupTestEnvironment(t)
	GivenReader(ctx, t, store, FixtureReader(FixturePhone))

	overdueID := GivenUniqueID(t)
	GivenBook(ctx, t, store, FixtureBorrowedBook(overdueID, FixturePhone, FakeToday.AddDate(0, 0, -15)))
	GivenBook(ctx, t, store, FixtureBorrowedBook(GivenUniqueID(t), FixturePhone, FakeToday.AddDate(0, 0, -14)))
	GivenBook(ctx, t, store, FixtureBook(GivenUniqueID(t)))

	handler := overduebooks.NewQueryHandler(store)

	// act
	result, err := handler.Handle(ctx, overduebooks.BuildQuery(FakeToday))

	// assert
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)
	assert.Equal(t, overdueID, result.Loans[0].BookID)
	assert.Equal(t, 15, result.Loans[0].DaysBorrowed)
	assert.Equal(t, "Дубровский", result.Loans[0].ReaderLastName)
}

func Test_QueryHandler_Handle_Error_CanceledContext(t *testing.T) {
	// arrange
	_, store := setupTestEnvironment(t)
	handler := overduebooks.NewQueryHandler(store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// act
	_, err := handler.Handle(ctx, overduebooks.BuildQuery(FakeToday))

	// assert
	assert.ErrorIs(t, err, core.ErrStoreFailure)
}

func setupTestEnvironment(t *testing.T) (context.Context, *memoryengine.Store) {
	t.Helper()

	store, err := memoryengine.NewStore()
	require.NoError(t, err)

	return context.Background(), store
}
