package removebook_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/entitystore/memoryengine"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/removebook"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
	. "github.com/AntonStoeckl/library-lending-go/testutil/helper" //nolint:revive
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// arrange
	ctx, store := setupTestEnvironment(t)
	bookID := GivenUniqueID(t)
	GivenBook(ctx, t, store, FixtureBook(bookID))
	logHandler := NewLogHandlerSpy(false)
	handler := removebook.NewCommandHandler(store, removebook.WithLogger(slog.New(logHandler)))

	// act
	result, err := handler.Handle(ctx, removebook.BuildCommand(bookID))

	// assert
	require.NoError(t, err)
	assert.False(t, result.WasOnLoan)
	assert.Equal(t, shell.StatusSuccess, result.BusinessOutcome())
	assert.Zero(t, logHandler.GetRecordCount())

	_, found, err := store.FindBook(ctx, bookID)
	require.NoError(t, err)
	assert.False(t, found)
}

func Test_CommandHandler_Handle_Success_WhileOnLoanIsFlagged(t *testing.T) {
	// arrange
	ctx, store := setupTestEnvironment(t)
	GivenReader(ctx, t, store, FixtureReader(FixturePhone))
	bookID := GivenUniqueID(t)
	GivenBook(ctx, t, store, FixtureBorrowedBook(bookID, FixturePhone, FakeToday))
	logHandler := NewLogHandlerSpy(false)
	handler := removebook.NewCommandHandler(store, removebook.WithLogger(slog.New(logHandler)))

	// act
	result, err := handler.Handle(ctx, removebook.BuildCommand(bookID))

	// assert
	require.NoError(t, err)
	assert.True(t, result.WasOnLoan)
	assert.Equal(t, removebook.OutcomeRemovedWhileOnLoan, result.BusinessOutcome())
	assert.True(t, logHandler.HasLogWithAttr(slog.LevelWarn, "book removed while on loan", "book_id", bookID.String()))
	assert.True(t, logHandler.HasLogWithAttr(slog.LevelWarn, "book removed while on loan", "reader_phone", FixturePhone))

	count, err := store.CountBooksBorrowedBy(ctx, FixturePhone)
	require.NoError(t, err)
	assert.Zero(t, count, "the reader does not hold the removed book any longer")
}

func Test_CommandHandler_Handle_Error_NotFound(t *testing.T) {
	// arrange
	ctx, store := setupTestEnvironment(t)
	handler := removebook.NewCommandHandler(store)

	// act
	_, err := handler.Handle(ctx, removebook.BuildCommand(GivenUniqueID(t)))

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func setupTestEnvironment(t *testing.T) (context.Context, *memoryengine.Store) {
	t.Helper()

	store, err := memoryengine.NewStore()
	require.NoError(t, err)

	return context.Background(), store
}
