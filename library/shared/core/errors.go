package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a book or reader with the given key does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidationFailed is returned when input violates a field rule. See ValidationError.
	ErrValidationFailed = errors.New("validation failed")

	// ErrDuplicatePhone is returned when a reader with the same phone is already registered.
	ErrDuplicatePhone = errors.New("a reader with this phone number is already registered")

	// ErrReaderNotFound is returned when lending to a reader that is not registered.
	ErrReaderNotFound = errors.New("reader not found, register the reader first")

	// ErrBookUnavailable is returned when a book can not be lent, because it does not exist or is already lent.
	ErrBookUnavailable = errors.New("book not found or already borrowed")

	// ErrBookNotFound is returned when returning a book that does not exist.
	ErrBookNotFound = errors.New("book not found")

	// ErrHasActiveLoans is returned when removing a reader who still holds books. See ActiveLoansError.
	ErrHasActiveLoans = errors.New("reader has books that are not returned")

	// ErrStoreFailure is returned when the entity store fails for technical reasons.
	ErrStoreFailure = errors.New("store failure")
)

// ValidationError names the offending field. It matches ErrValidationFailed with errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// ActiveLoansError carries the number of books a reader still holds. It matches ErrHasActiveLoans with errors.Is.
type ActiveLoansError struct {
	Count int
}

// NewActiveLoansError creates an ActiveLoansError.
func NewActiveLoansError(count int) error {
	return &ActiveLoansError{Count: count}
}

func (e *ActiveLoansError) Error() string {
	return fmt.Sprintf("reader has %d books that are not returned", e.Count)
}

func (e *ActiveLoansError) Unwrap() error {
	return ErrHasActiveLoans
}

// NotFoundError names the missing entity. It matches ErrNotFound with errors.Is.
type NotFoundError struct {
	Entity string
	Key    string
}

// NewBookNotFoundError creates a NotFoundError for a book.
func NewBookNotFoundError(id string) error {
	return &NotFoundError{Entity: "book", Key: id}
}

// NewReaderNotFoundError creates a NotFoundError for a reader.
func NewReaderNotFoundError(phone string) error {
	return &NotFoundError{Entity: "reader", Key: phone}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// IsRejection reports whether err is a business outcome rather than a technical failure.
func IsRejection(err error) bool {
	if err == nil || errors.Is(err, ErrStoreFailure) {
		return false
	}

	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrDuplicatePhone) ||
		errors.Is(err, ErrReaderNotFound) ||
		errors.Is(err, ErrBookUnavailable) ||
		errors.Is(err, ErrBookNotFound) ||
		errors.Is(err, ErrHasActiveLoans)
}
