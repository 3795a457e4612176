package registeredreaders_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/entitystore/memoryengine"
	"github.com/AntonStoeckl/library-lending-go/library/features/query/registeredreaders"
	. "github.com/AntonStoeckl/library-lending-go/testutil/helper" //nolint:revive
)

func Test_QueryHandler_Handle_NewestRegistrationFirstThenLastName(t *testing.T) {
	// arrange
	ctx, store := setupTestEnvironment(t)

	older := FixtureReader("79990000001")

	sameDayB := FixtureReader("79990000002")
	sameDayB.LastName = "Троекуров"
	sameDayB.RegistrationDate = time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)

	sameDayA := FixtureReader("79990000003")
	sameDayA.LastName = "Верейский"
	sameDayA.RegistrationDate = sameDayB.RegistrationDate

	GivenReader(ctx, t, store, older)
	GivenReader(ctx, t, store, sameDayB)
	GivenReader(ctx, t, store, sameDayA)

	handler := registeredreaders.NewQueryHandler(store)

	// act
	result, err := handler.Handle(ctx, registeredreaders.BuildQuery())

	// assert
	require.NoError(t, err)
	require.Equal(t, 3, result.Count)
	assert.Equal(t, "Верейский", result.Readers[0].LastName)
	assert.Equal(t, "Троекуров", result.Readers[1].LastName)
	assert.Equal(t, "79990000001", result.Readers[2].Phone)
}

func setupTestEnvironment(t *testing.T) (context.Context, *memoryengine.Store) {
	t.Helper()

	store, err := memoryengine.NewStore()
	require.NoError(t, err)

	return context.Background(), store
}
