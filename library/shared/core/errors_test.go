package core_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

func Test_ActiveLoansError_CarriesCountAndMatchesSentinel(t *testing.T) {
	// act
	err := core.NewActiveLoansError(2)

	// assert
	assert.ErrorIs(t, err, core.ErrHasActiveLoans)
	assert.EqualError(t, err, "reader has 2 books that are not returned")

	var loansErr *core.ActiveLoansError
	require.ErrorAs(t, err, &loansErr)
	assert.Equal(t, 2, loansErr.Count)
}

func Test_NotFoundError_MatchesSentinel(t *testing.T) {
	// act
	err := core.NewReaderNotFoundError("79991112233")

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.EqualError(t, err, "reader 79991112233 not found")
}

func Test_IsRejection(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil", err: nil, expected: false},
		{name: "validation", err: core.NewValidationError("title", "is required"), expected: true},
		{name: "book unavailable", err: core.ErrBookUnavailable, expected: true},
		{name: "active loans", err: core.NewActiveLoansError(1), expected: true},
		{name: "store failure", err: errors.Join(core.ErrStoreFailure, errors.New("connection refused")), expected: false},
		{name: "unknown", err: errors.New("boom"), expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, core.IsRejection(tc.err))
		})
	}
}
