package core

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/entitystore"
)

const (
	// MaxTitleLength is the maximum number of characters of a title.
	MaxTitleLength = 255

	// MaxAuthorLength is the maximum number of characters of an author.
	MaxAuthorLength = 255

	// MaxGenreLength is the maximum number of characters of a genre.
	MaxGenreLength = 100

	// DefaultGenre is stored when no genre is given.
	DefaultGenre = "unspecified"

	// DefaultCoverType is stored when no cover type is given.
	DefaultCoverType = entitystore.CoverHard

	// DefaultCondition is stored when no condition is given.
	DefaultCondition = entitystore.ConditionGood

	fieldTitle           = "title"
	fieldAuthor          = "author"
	fieldCoverType       = "cover_type"
	fieldPublicationYear = "publication_year"
	fieldGenre           = "genre"
	fieldPageCount       = "page_count"
	fieldCondition       = "condition"
	fieldStatus          = "status"
	fieldBorrowerPhone   = "borrower_phone"
)

// NewBook is the input for adding a book. Title and Author are required, every other field is optional.
type NewBook struct {
	Title           string
	Author          string
	CoverType       *string
	PublicationYear *int
	Genre           *string
	PageCount       *int
	Condition       *string
	Status          *string
	BorrowerPhone   *string
}

// BookPatch is the input for changing book details. Nil fields are left as they are.
type BookPatch struct {
	Title           *string
	Author          *string
	CoverType       *string
	PublicationYear *int
	Genre           *string
	PageCount       *int
	Condition       *string
}

// BuildBook validates input, applies the defaults, and returns the book to store.
// A book added as borrowed needs a borrower phone and gets today as its borrowed date;
// whether that reader exists is up to the caller to check.
func BuildBook(id uuid.UUID, input NewBook, today time.Time) (entitystore.Book, error) {
	title, err := requiredText(fieldTitle, input.Title, MaxTitleLength)
	if err != nil {
		return entitystore.Book{}, err
	}

	author, err := requiredText(fieldAuthor, input.Author, MaxAuthorLength)
	if err != nil {
		return entitystore.Book{}, err
	}

	book := entitystore.Book{
		ID:              id,
		Title:           title,
		Author:          author,
		CoverType:       DefaultCoverType,
		PublicationYear: ToDate(today).Year(),
		Genre:           DefaultGenre,
		PageCount:       0,
		Condition:       DefaultCondition,
		Status:          entitystore.StatusAvailable,
	}

	if input.CoverType != nil {
		if book.CoverType, err = parseCoverType(*input.CoverType); err != nil {
			return entitystore.Book{}, err
		}
	}

	if input.PublicationYear != nil {
		if book.PublicationYear, err = validPublicationYear(*input.PublicationYear, today); err != nil {
			return entitystore.Book{}, err
		}
	}

	if input.Genre != nil {
		if book.Genre, err = genreOrDefault(*input.Genre); err != nil {
			return entitystore.Book{}, err
		}
	}

	if input.PageCount != nil {
		if book.PageCount, err = validPageCount(*input.PageCount); err != nil {
			return entitystore.Book{}, err
		}
	}

	if input.Condition != nil {
		if book.Condition, err = parseCondition(*input.Condition); err != nil {
			return entitystore.Book{}, err
		}
	}

	if input.Status != nil {
		if book.Status, err = parseStatus(*input.Status); err != nil {
			return entitystore.Book{}, err
		}
	}

	if err = applyInitialLoan(&book, input.BorrowerPhone, today); err != nil {
		return entitystore.Book{}, err
	}

	return book, nil
}

func applyInitialLoan(book *entitystore.Book, borrowerPhone *string, today time.Time) error {
	if book.Status != entitystore.StatusBorrowed {
		if borrowerPhone != nil && strings.TrimSpace(*borrowerPhone) != "" {
			return NewValidationError(fieldBorrowerPhone, "only allowed when status is borrowed")
		}

		return nil
	}

	if borrowerPhone == nil {
		return NewValidationError(fieldBorrowerPhone, "required when status is borrowed")
	}

	phone := strings.TrimSpace(*borrowerPhone)
	if !phonePattern.MatchString(phone) {
		return NewValidationError(fieldBorrowerPhone, phoneFormatReason)
	}

	borrowedDate := ToDate(today)
	book.BorrowerPhone = &phone
	book.BorrowedDate = &borrowedDate

	return nil
}

// BuildBookDetailsPatch validates the supplied fields of input. Supplied title and author must still be non-empty.
func BuildBookDetailsPatch(input BookPatch, today time.Time) (entitystore.BookDetailsPatch, error) {
	var patch entitystore.BookDetailsPatch

	if input.Title != nil {
		title, err := requiredText(fieldTitle, *input.Title, MaxTitleLength)
		if err != nil {
			return entitystore.BookDetailsPatch{}, err
		}
		patch.Title = &title
	}

	if input.Author != nil {
		author, err := requiredText(fieldAuthor, *input.Author, MaxAuthorLength)
		if err != nil {
			return entitystore.BookDetailsPatch{}, err
		}
		patch.Author = &author
	}

	if input.CoverType != nil {
		coverType, err := parseCoverType(*input.CoverType)
		if err != nil {
			return entitystore.BookDetailsPatch{}, err
		}
		patch.CoverType = &coverType
	}

	if input.PublicationYear != nil {
		year, err := validPublicationYear(*input.PublicationYear, today)
		if err != nil {
			return entitystore.BookDetailsPatch{}, err
		}
		patch.PublicationYear = &year
	}

	if input.Genre != nil {
		genre, err := genreOrDefault(*input.Genre)
		if err != nil {
			return entitystore.BookDetailsPatch{}, err
		}
		patch.Genre = &genre
	}

	if input.PageCount != nil {
		pageCount, err := validPageCount(*input.PageCount)
		if err != nil {
			return entitystore.BookDetailsPatch{}, err
		}
		patch.PageCount = &pageCount
	}

	if input.Condition != nil {
		condition, err := parseCondition(*input.Condition)
		if err != nil {
			return entitystore.BookDetailsPatch{}, err
		}
		patch.Condition = &condition
	}

	return patch, nil
}

func requiredText(field, value string, maxLength int) (string, error) {
	trimmed := strings.TrimSpace(value)

	if trimmed == "" {
		return "", NewValidationError(field, "is required")
	}

	if utf8.RuneCountInString(trimmed) > maxLength {
		return "", NewValidationError(field, fmt.Sprintf("must not exceed %d characters", maxLength))
	}

	return trimmed, nil
}

func genreOrDefault(value string) (string, error) {
	trimmed := strings.TrimSpace(value)

	if trimmed == "" {
		return DefaultGenre, nil
	}

	if utf8.RuneCountInString(trimmed) > MaxGenreLength {
		return "", NewValidationError(fieldGenre, fmt.Sprintf("must not exceed %d characters", MaxGenreLength))
	}

	return trimmed, nil
}

func parseCoverType(value string) (entitystore.CoverType, error) {
	switch coverType := entitystore.CoverType(strings.TrimSpace(value)); coverType {
	case entitystore.CoverSoft, entitystore.CoverHard:
		return coverType, nil
	default:
		return "", NewValidationError(fieldCoverType, "must be one of soft, hard")
	}
}

func parseCondition(value string) (entitystore.Condition, error) {
	switch condition := entitystore.Condition(strings.TrimSpace(value)); condition {
	case entitystore.ConditionNew, entitystore.ConditionGood, entitystore.ConditionAverage, entitystore.ConditionBad:
		return condition, nil
	default:
		return "", NewValidationError(fieldCondition, "must be one of new, good, average, bad")
	}
}

func parseStatus(value string) (entitystore.BookStatus, error) {
	switch status := entitystore.BookStatus(strings.TrimSpace(value)); status {
	case entitystore.StatusAvailable, entitystore.StatusBorrowed:
		return status, nil
	default:
		return "", NewValidationError(fieldStatus, "must be one of available, borrowed")
	}
}

func validPublicationYear(year int, today time.Time) (int, error) {
	latest := ToDate(today).Year() + 1
	if year < 0 || year > latest {
		return 0, NewValidationError(fieldPublicationYear, fmt.Sprintf("must be between 0 and %d", latest))
	}

	return year, nil
}

func validPageCount(pageCount int) (int, error) {
	if pageCount < 0 {
		return 0, NewValidationError(fieldPageCount, "must not be negative")
	}

	return pageCount, nil
}
