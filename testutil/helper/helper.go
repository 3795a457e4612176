package helper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/entitystore"
)

// FixturePhone is the phone number of the fixture reader.
const FixturePhone = "79991112233"

// FakeToday is the fixed "today" used by the test suites.
var FakeToday = time.Date(2025, time.March, 20, 10, 0, 0, 0, time.UTC)

// SeedsEntities is the subset of the entity store that fixtures are written with.
type SeedsEntities interface {
	InsertBook(ctx context.Context, book entitystore.Book) error
	InsertReader(ctx context.Context, reader entitystore.Reader) error
}

// GivenUniqueID returns a fresh UUIDv7.
func GivenUniqueID(t testing.TB) uuid.UUID {
	t.Helper()

	id, err := uuid.NewV7()
	require.NoError(t, err, "error in arranging test data")

	return id
}

// FixtureBook returns an available book "Дубровский" by "А. Пушкин".
func FixtureBook(id uuid.UUID) entitystore.Book {
	return entitystore.Book{
		ID:              id,
		Title:           "Дубровский",
		Author:          "А. Пушкин",
		CoverType:       entitystore.CoverHard,
		PublicationYear: 1841,
		Genre:           "роман",
		PageCount:       160,
		Condition:       entitystore.ConditionGood,
		Status:          entitystore.StatusAvailable,
	}
}

// FixtureBorrowedBook returns the fixture book lent to phone on borrowedOn.
func FixtureBorrowedBook(id uuid.UUID, phone string, borrowedOn time.Time) entitystore.Book {
	book := FixtureBook(id)
	book.Status = entitystore.StatusBorrowed
	book.BorrowerPhone = &phone
	borrowedDate := time.Date(borrowedOn.Year(), borrowedOn.Month(), borrowedOn.Day(), 0, 0, 0, 0, time.UTC)
	book.BorrowedDate = &borrowedDate

	return book
}

// FixtureReader returns the reader "Владимир Дубровский" with the given phone.
func FixtureReader(phone string) entitystore.Reader {
	return entitystore.Reader{
		Phone:            phone,
		FirstName:        "Владимир",
		LastName:         "Дубровский",
		BirthDate:        time.Date(1990, time.May, 1, 0, 0, 0, 0, time.UTC),
		RegistrationDate: time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC),
	}
}

// GivenBook stores book as test precondition.
func GivenBook(ctx context.Context, t testing.TB, store SeedsEntities, book entitystore.Book) {
	t.Helper()

	require.NoError(t, store.InsertBook(ctx, book), "error in arranging test data")
}

// GivenReader stores reader as test precondition.
func GivenReader(ctx context.Context, t testing.TB, store SeedsEntities, reader entitystore.Reader) {
	t.Helper()

	require.NoError(t, store.InsertReader(ctx, reader), "error in arranging test data")
}
