package memoryengine

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/entitystore"
)

var errUnknownBorrower = errors.New("borrower phone references no reader")

// Store keeps books and readers in maps guarded by a single RWMutex.
type Store struct {
	mu      sync.RWMutex
	books   map[uuid.UUID]entitystore.Book
	readers map[string]entitystore.Reader
	logger  entitystore.Logger
}

// Option defines a functional option for configuring Store.
type Option func(*Store) error

// WithLogger sets a logger that receives one debug record per store operation.
func WithLogger(logger entitystore.Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// NewStore creates an empty Store.
func NewStore(options ...Option) (*Store, error) {
	s := &Store{
		books:   make(map[uuid.UUID]entitystore.Book),
		readers: make(map[string]entitystore.Reader),
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *Store) logOperation(operation string, args ...any) {
	if s.logger != nil {
		s.logger.Debug("memory store operation: "+operation, args...)
	}
}

func checkContext(ctx context.Context, sentinel error) error {
	if err := ctx.Err(); err != nil {
		return errors.Join(sentinel, err)
	}

	return nil
}

func copyBook(book entitystore.Book) entitystore.Book {
	if book.BorrowedDate != nil {
		borrowedDate := *book.BorrowedDate
		book.BorrowedDate = &borrowedDate
	}

	if book.BorrowerPhone != nil {
		borrowerPhone := *book.BorrowerPhone
		book.BorrowerPhone = &borrowerPhone
	}

	return book
}

// catalogEntry must be called with at least a read lock held.
func (s *Store) catalogEntry(book entitystore.Book) entitystore.CatalogEntry {
	entry := entitystore.CatalogEntry{Book: copyBook(book)}

	if book.BorrowerPhone != nil {
		if reader, ok := s.readers[*book.BorrowerPhone]; ok {
			firstName, lastName := reader.FirstName, reader.LastName
			entry.BorrowerFirstName = &firstName
			entry.BorrowerLastName = &lastName
		}
	}

	return entry
}

// countBorrowedBy must be called with at least a read lock held.
func (s *Store) countBorrowedBy(phone string) int {
	count := 0

	for _, book := range s.books {
		if book.BorrowerPhone != nil && *book.BorrowerPhone == phone {
			count++
		}
	}

	return count
}

// Ping reports whether the context is still usable.
func (s *Store) Ping(ctx context.Context) error {
	return checkContext(ctx, entitystore.ErrQueryingFailed)
}

// InsertBook stores a new book.
func (s *Store) InsertBook(ctx context.Context, book entitystore.Book) error {
	if err := checkContext(ctx, entitystore.ErrExecFailed); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[book.ID]; ok {
		return entitystore.ErrDuplicateKey
	}

	if book.BorrowerPhone != nil {
		if _, ok := s.readers[*book.BorrowerPhone]; !ok {
			return errors.Join(entitystore.ErrExecFailed, errUnknownBorrower)
		}
	}

	s.books[book.ID] = copyBook(book)
	s.logOperation("insert_book", "book_id", book.ID.String())

	return nil
}

// UpdateBookDetails overwrites the supplied fields of a book and keeps the others.
func (s *Store) UpdateBookDetails(ctx context.Context, id uuid.UUID, patch entitystore.BookDetailsPatch) (bool, error) {
	if err := checkContext(ctx, entitystore.ErrExecFailed); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[id]
	if !ok {
		return false, nil
	}

	if patch.Title != nil {
		book.Title = *patch.Title
	}

	if patch.Author != nil {
		book.Author = *patch.Author
	}

	if patch.CoverType != nil {
		book.CoverType = *patch.CoverType
	}

	if patch.PublicationYear != nil {
		book.PublicationYear = *patch.PublicationYear
	}

	if patch.Genre != nil {
		book.Genre = *patch.Genre
	}

	if patch.PageCount != nil {
		book.PageCount = *patch.PageCount
	}

	if patch.Condition != nil {
		book.Condition = *patch.Condition
	}

	s.books[id] = book
	s.logOperation("update_book_details", "book_id", id.String())

	return true, nil
}

// DeleteBook removes a book and reports whether it was on loan.
func (s *Store) DeleteBook(ctx context.Context, id uuid.UUID) (deleted bool, wasBorrowed bool, err error) {
	if err = checkContext(ctx, entitystore.ErrExecFailed); err != nil {
		return false, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[id]
	if !ok {
		return false, false, nil
	}

	delete(s.books, id)
	s.logOperation("delete_book", "book_id", id.String())

	return true, book.BorrowerPhone != nil, nil
}

// FindBook loads one book together with the name of its current borrower.
func (s *Store) FindBook(ctx context.Context, id uuid.UUID) (entitystore.CatalogEntry, bool, error) {
	if err := checkContext(ctx, entitystore.ErrQueryingFailed); err != nil {
		return entitystore.CatalogEntry{}, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	book, ok := s.books[id]
	if !ok {
		return entitystore.CatalogEntry{}, false, nil
	}

	return s.catalogEntry(book), true, nil
}

// ListBooks returns the whole catalog ordered by title, byte-wise like the C collation.
func (s *Store) ListBooks(ctx context.Context) ([]entitystore.CatalogEntry, error) {
	if err := checkContext(ctx, entitystore.ErrQueryingFailed); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]entitystore.CatalogEntry, 0, len(s.books))
	for _, book := range s.books {
		entries = append(entries, s.catalogEntry(book))
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Title != entries[j].Title {
			return entries[i].Title < entries[j].Title
		}

		return entries[i].ID.String() < entries[j].ID.String()
	})

	return entries, nil
}

// InsertReader stores a new reader. An already registered phone yields entitystore.ErrDuplicateKey.
func (s *Store) InsertReader(ctx context.Context, reader entitystore.Reader) error {
	if err := checkContext(ctx, entitystore.ErrExecFailed); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.readers[reader.Phone]; ok {
		return entitystore.ErrDuplicateKey
	}

	s.readers[reader.Phone] = reader
	s.logOperation("insert_reader", "reader_phone", reader.Phone)

	return nil
}

// FindReader loads one reader by phone.
func (s *Store) FindReader(ctx context.Context, phone string) (entitystore.Reader, bool, error) {
	if err := checkContext(ctx, entitystore.ErrQueryingFailed); err != nil {
		return entitystore.Reader{}, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	reader, ok := s.readers[phone]

	return reader, ok, nil
}

// ListReaders returns all readers, newest registrations first and then by last name.
func (s *Store) ListReaders(ctx context.Context) ([]entitystore.Reader, error) {
	if err := checkContext(ctx, entitystore.ErrQueryingFailed); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	readers := make([]entitystore.Reader, 0, len(s.readers))
	for _, reader := range s.readers {
		readers = append(readers, reader)
	}

	sort.Slice(readers, func(i, j int) bool {
		if !readers[i].RegistrationDate.Equal(readers[j].RegistrationDate) {
			return readers[i].RegistrationDate.After(readers[j].RegistrationDate)
		}

		if readers[i].LastName != readers[j].LastName {
			return readers[i].LastName < readers[j].LastName
		}

		return readers[i].Phone < readers[j].Phone
	})

	return readers, nil
}

// CountBooksBorrowedBy returns how many books the reader currently holds.
func (s *Store) CountBooksBorrowedBy(ctx context.Context, phone string) (int, error) {
	if err := checkContext(ctx, entitystore.ErrQueryingFailed); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.countBorrowedBy(phone), nil
}

// DeleteReaderWithoutLoans removes a reader only while no book is lent to them.
func (s *Store) DeleteReaderWithoutLoans(ctx context.Context, phone string) (bool, error) {
	if err := checkContext(ctx, entitystore.ErrExecFailed); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.readers[phone]; !ok || s.countBorrowedBy(phone) > 0 {
		return false, nil
	}

	delete(s.readers, phone)
	s.logOperation("delete_reader_without_loans", "reader_phone", phone)

	return true, nil
}

// LendBook marks an available book as borrowed by an existing reader.
// It reports false if the book is missing, already borrowed, or the reader does not exist.
func (s *Store) LendBook(ctx context.Context, id uuid.UUID, phone string, borrowedOn time.Time) (bool, error) {
	if err := checkContext(ctx, entitystore.ErrExecFailed); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[id]
	if !ok || book.Status != entitystore.StatusAvailable {
		return false, nil
	}

	if _, readerExists := s.readers[phone]; !readerExists {
		return false, nil
	}

	borrowerPhone, borrowedDate := phone, borrowedOn
	book.Status = entitystore.StatusBorrowed
	book.BorrowerPhone = &borrowerPhone
	book.BorrowedDate = &borrowedDate
	s.books[id] = book
	s.logOperation("lend_book", "book_id", id.String(), "reader_phone", phone)

	return true, nil
}

// ReturnBook marks a book as available and clears its loan data.
func (s *Store) ReturnBook(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := checkContext(ctx, entitystore.ErrExecFailed); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[id]
	if !ok {
		return false, nil
	}

	book.Status = entitystore.StatusAvailable
	book.BorrowerPhone = nil
	book.BorrowedDate = nil
	s.books[id] = book
	s.logOperation("return_book", "book_id", id.String())

	return true, nil
}

// ListLoans returns every borrowed book joined with its borrower, oldest loans first.
func (s *Store) ListLoans(ctx context.Context) ([]entitystore.Loan, error) {
	if err := checkContext(ctx, entitystore.ErrQueryingFailed); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	loans := make([]entitystore.Loan, 0)

	for _, book := range s.books {
		if book.Status != entitystore.StatusBorrowed || book.BorrowerPhone == nil || book.BorrowedDate == nil {
			continue
		}

		reader, ok := s.readers[*book.BorrowerPhone]
		if !ok {
			continue
		}

		loans = append(loans, entitystore.Loan{
			BookID:          book.ID,
			Title:           book.Title,
			Author:          book.Author,
			BorrowedDate:    *book.BorrowedDate,
			ReaderPhone:     reader.Phone,
			ReaderFirstName: reader.FirstName,
			ReaderLastName:  reader.LastName,
		})
	}

	sort.Slice(loans, func(i, j int) bool {
		if !loans[i].BorrowedDate.Equal(loans[j].BorrowedDate) {
			return loans[i].BorrowedDate.Before(loans[j].BorrowedDate)
		}

		return loans[i].Title < loans[j].Title
	})

	return loans, nil
}

// CountStats returns the book and reader totals.
func (s *Store) CountStats(ctx context.Context) (entitystore.Stats, error) {
	if err := checkContext(ctx, entitystore.ErrQueryingFailed); err != nil {
		return entitystore.Stats{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := entitystore.Stats{
		TotalBooks:   len(s.books),
		TotalReaders: len(s.readers),
	}

	for _, book := range s.books {
		switch book.Status {
		case entitystore.StatusAvailable:
			stats.AvailableBooks++
		case entitystore.StatusBorrowed:
			stats.BorrowedBooks++
		}
	}

	return stats, nil
}
