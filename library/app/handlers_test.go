package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/entitystore/memoryengine"
	"github.com/AntonStoeckl/library-lending-go/library/app"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/lendbook"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/removereader"
	"github.com/AntonStoeckl/library-lending-go/library/features/query/bookscatalog"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
	. "github.com/AntonStoeckl/library-lending-go/testutil/helper" //nolint:revive
)

func Test_NewHandlers_WithoutObservabilityUsesPlainHandlers(t *testing.T) {
	// arrange
	store, err := memoryengine.NewStore()
	require.NoError(t, err)

	// act
	handlers, err := app.NewHandlers(store, app.Observability{})

	// assert
	require.NoError(t, err)
	_, isPlain := handlers.LendBook.(lendbook.CommandHandler)
	assert.True(t, isPlain)
}

func Test_NewHandlers_WrappedHandlersRecordMetricsAndSpans(t *testing.T) {
	// arrange
	ctx := context.Background()
	store, err := memoryengine.NewStore()
	require.NoError(t, err)

	GivenReader(ctx, t, store, FixtureReader(FixturePhone))
	GivenBook(ctx, t, store, FixtureBorrowedBook(GivenUniqueID(t), FixturePhone, FakeToday))

	metrics := NewMetricsCollectorSpy(true)
	tracing := NewTracingCollectorSpy(true)

	handlers, err := app.NewHandlers(store, app.Observability{Metrics: metrics, Tracing: tracing})
	require.NoError(t, err)

	// act
	_, removeErr := handlers.RemoveReader.Handle(ctx, removereader.BuildCommand(FixturePhone))
	_, catalogErr := handlers.BooksCatalog.Handle(ctx, bookscatalog.BuildQuery())

	// assert
	assert.ErrorIs(t, removeErr, core.ErrHasActiveLoans)
	require.NoError(t, catalogErr)

	assert.True(t, metrics.HasCounterRecordForMetric(shell.CommandHandlerRejectedMetric).
		WithLabel("command_type", "RemoveReader").Assert())
	assert.True(t, metrics.HasDurationRecordForMetric(shell.QueryHandlerDurationMetric).
		WithLabel("query_type", "BooksCatalog").
		WithStatus(shell.StatusSuccess).Assert())
	assert.True(t, tracing.HasFinishedSpan(shell.SpanNameCommandHandle, shell.StatusRejected))
	assert.True(t, tracing.HasFinishedSpan(shell.SpanNameQueryHandle, shell.StatusSuccess))
}
