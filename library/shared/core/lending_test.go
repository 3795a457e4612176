package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

func Test_IsOverdue_BoundaryIsStrictlyMoreThanFourteenDays(t *testing.T) {
	today := time.Date(2025, time.March, 20, 9, 30, 0, 0, time.UTC)

	testCases := []struct {
		name            string
		borrowedOn      time.Time
		expectedDays    int
		expectedOverdue bool
	}{
		{name: "borrowed today", borrowedOn: today, expectedDays: 0, expectedOverdue: false},
		{name: "borrowed 14 days ago", borrowedOn: today.AddDate(0, 0, -14), expectedDays: 14, expectedOverdue: false},
		{name: "borrowed 15 days ago", borrowedOn: today.AddDate(0, 0, -15), expectedDays: 15, expectedOverdue: true},
		{name: "borrowed 40 days ago", borrowedOn: today.AddDate(0, 0, -40), expectedDays: 40, expectedOverdue: true},
		{name: "borrowed in the future", borrowedOn: today.AddDate(0, 0, 3), expectedDays: 0, expectedOverdue: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			days := core.DaysSince(tc.borrowedOn, today)
			overdue := core.IsOverdue(tc.borrowedOn, today)

			// assert
			assert.Equal(t, tc.expectedDays, days)
			assert.Equal(t, tc.expectedOverdue, overdue)
		})
	}
}

func Test_DaysSince_IgnoresTimeOfDay(t *testing.T) {
	// arrange
	borrowedOn := time.Date(2025, time.March, 1, 23, 59, 0, 0, time.UTC)
	today := time.Date(2025, time.March, 16, 0, 1, 0, 0, time.UTC)

	// act
	days := core.DaysSince(borrowedOn, today)

	// assert
	assert.Equal(t, 15, days)
	assert.True(t, core.IsOverdue(borrowedOn, today))
}

func Test_DaysSince_UsesCalendarDateOfTheGivenLocation(t *testing.T) {
	// arrange
	moscow := time.FixedZone("MSK", 3*60*60)
	borrowedOn := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	today := time.Date(2025, time.March, 15, 1, 0, 0, 0, moscow)

	// act
	days := core.DaysSince(borrowedOn, today)

	// assert
	assert.Equal(t, 14, days)
}

func Test_DueDate_IsTheLastDayThatIsNotOverdue(t *testing.T) {
	// arrange
	borrowedOn := time.Date(2025, time.March, 1, 18, 0, 0, 0, time.UTC)

	// act
	due := core.DueDate(borrowedOn)

	// assert
	assert.Equal(t, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC), due)
	assert.False(t, core.IsOverdue(borrowedOn, due))
	assert.True(t, core.IsOverdue(borrowedOn, due.AddDate(0, 0, 1)))
}
