package entitystore

import (
	"time"

	"github.com/google/uuid"
)

// BookStatus is the lending state of a Book.
type BookStatus string

// CoverType is the binding of a Book.
type CoverType string

// Condition is the physical condition of a Book.
type Condition string

const (
	StatusAvailable BookStatus = "available"
	StatusBorrowed  BookStatus = "borrowed"

	CoverSoft CoverType = "soft"
	CoverHard CoverType = "hard"

	ConditionNew     Condition = "new"
	ConditionGood    Condition = "good"
	ConditionAverage Condition = "average"
	ConditionBad     Condition = "bad"
)

// Book is the persisted catalog record.
//
// BorrowedDate and BorrowerPhone are set if and only if Status is StatusBorrowed.
type Book struct {
	ID              uuid.UUID
	Title           string
	Author          string
	CoverType       CoverType
	PublicationYear int
	Genre           string
	PageCount       int
	Condition       Condition
	Status          BookStatus
	BorrowedDate    *time.Time
	BorrowerPhone   *string
}

// IsBorrowed reports whether the book is currently lent to a reader.
func (b Book) IsBorrowed() bool {
	return b.Status == StatusBorrowed
}

// CatalogEntry is a Book joined with the name of its borrower, if any.
type CatalogEntry struct {
	Book
	BorrowerFirstName *string
	BorrowerLastName  *string
}

// BookDetailsPatch holds the mutable descriptive fields of a Book.
// A nil field keeps the stored value.
type BookDetailsPatch struct {
	Title           *string
	Author          *string
	CoverType       *CoverType
	PublicationYear *int
	Genre           *string
	PageCount       *int
	Condition       *Condition
}

// IsEmpty reports whether the patch carries no field at all.
func (p BookDetailsPatch) IsEmpty() bool {
	return p.Title == nil &&
		p.Author == nil &&
		p.CoverType == nil &&
		p.PublicationYear == nil &&
		p.Genre == nil &&
		p.PageCount == nil &&
		p.Condition == nil
}

// Reader is a registered reader. Phone is the natural key.
type Reader struct {
	Phone            string
	FirstName        string
	LastName         string
	BirthDate        time.Time
	RegistrationDate time.Time
}

// Loan is a currently borrowed Book joined with the Reader holding it.
type Loan struct {
	BookID          uuid.UUID
	Title           string
	Author          string
	BorrowedDate    time.Time
	ReaderPhone     string
	ReaderFirstName string
	ReaderLastName  string
}

// Stats holds counts derived from the current records.
type Stats struct {
	TotalBooks     int
	AvailableBooks int
	BorrowedBooks  int
	TotalReaders   int
}
