package core

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/AntonStoeckl/library-lending-go/entitystore"
)

// MaxNameLength is the maximum number of characters of a first or last name.
const MaxNameLength = 100

const (
	fieldPhone     = "phone"
	fieldFirstName = "first_name"
	fieldLastName  = "last_name"
	fieldBirthDate = "birth_date"

	phoneFormatReason = "must be 11 digits starting with 7, e.g. 79161234567"
)

var phonePattern = regexp.MustCompile(`^7[0-9]{10}$`)

// NewReader is the input for registering a reader.
type NewReader struct {
	Phone     string
	FirstName string
	LastName  string
	BirthDate time.Time
}

// ValidatePhone checks the 11 digit format starting with 7, e.g. 79161234567.
func ValidatePhone(phone string) error {
	if !phonePattern.MatchString(phone) {
		return NewValidationError(fieldPhone, phoneFormatReason)
	}

	return nil
}

// BuildReader validates input and returns the reader to store, registered today.
func BuildReader(input NewReader, today time.Time) (entitystore.Reader, error) {
	phone := strings.TrimSpace(input.Phone)
	if err := ValidatePhone(phone); err != nil {
		return entitystore.Reader{}, err
	}

	firstName, err := validName(fieldFirstName, input.FirstName)
	if err != nil {
		return entitystore.Reader{}, err
	}

	lastName, err := validName(fieldLastName, input.LastName)
	if err != nil {
		return entitystore.Reader{}, err
	}

	if input.BirthDate.IsZero() {
		return entitystore.Reader{}, NewValidationError(fieldBirthDate, "is required")
	}

	birthDate := ToDate(input.BirthDate)
	registrationDate := ToDate(today)

	if birthDate.After(registrationDate) {
		return entitystore.Reader{}, NewValidationError(fieldBirthDate, "must not be in the future")
	}

	return entitystore.Reader{
		Phone:            phone,
		FirstName:        firstName,
		LastName:         lastName,
		BirthDate:        birthDate,
		RegistrationDate: registrationDate,
	}, nil
}

func validName(field, value string) (string, error) {
	trimmed := strings.TrimSpace(value)

	if trimmed == "" {
		return "", NewValidationError(field, "is required")
	}

	if utf8.RuneCountInString(trimmed) > MaxNameLength {
		return "", NewValidationError(field, fmt.Sprintf("must not exceed %d characters", MaxNameLength))
	}

	return trimmed, nil
}
