package httpapi

import (
	"time"

	"github.com/AntonStoeckl/library-lending-go/entitystore"
	"github.com/AntonStoeckl/library-lending-go/library/features/query/bookdetails"
	"github.com/AntonStoeckl/library-lending-go/library/features/query/librarystats"
	"github.com/AntonStoeckl/library-lending-go/library/features/query/overduebooks"
	"github.com/AntonStoeckl/library-lending-go/library/features/query/readerdetails"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

type bookRequest struct {
	Title           *string `json:"title"`
	Author          *string `json:"author"`
	CoverType       *string `json:"coverType"`
	PublicationYear *int    `json:"publicationYear"`
	Genre           *string `json:"genre"`
	PageCount       *int    `json:"pageCount"`
	ConditionState  *string `json:"conditionState"`
	Status          *string `json:"status"`
	BorrowerPhone   *string `json:"borrowerPhone"`
}

type readerRequest struct {
	Phone     string `json:"phone"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Dob       string `json:"dob"`
}

type borrowRequest struct {
	BookID string `json:"bookId"`
	Phone  string `json:"phone"`
}

type returnRequest struct {
	BookID string `json:"bookId"`
}

type bookResponse struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	CoverType       string  `json:"cover_type"`
	PublicationYear int     `json:"publication_year"`
	Genre           string  `json:"genre"`
	PageCount       int     `json:"page_count"`
	ConditionState  string  `json:"condition_state"`
	Status          string  `json:"status"`
	BorrowedDate    *string `json:"borrowed_date"`
	BorrowerPhone   *string `json:"borrower_phone"`
	FirstName       *string `json:"first_name"`
	LastName        *string `json:"last_name"`
	DueDate         *string `json:"due_date,omitempty"`
}

type readerResponse struct {
	Phone            string `json:"phone"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	BirthDate        string `json:"birth_date"`
	RegistrationDate string `json:"registration_date"`
	BooksBorrowed    *int   `json:"books_borrowed,omitempty"`
}

// overdueResponse keeps the days_overdue key of the existing frontend; it holds the days since borrowing.
type overdueResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	BorrowedDate string `json:"borrowed_date"`
	DueDate      string `json:"due_date"`
	DaysOverdue  int    `json:"days_overdue"`
	ReaderPhone  string `json:"reader_phone"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
}

type statsResponse struct {
	TotalBooks     int `json:"total_books"`
	AvailableBooks int `json:"available_books"`
	BorrowedBooks  int `json:"borrowed_books"`
	TotalReaders   int `json:"total_readers"`
	OverdueBooks   int `json:"overdue_books"`
}

type messageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
	DueDate string `json:"due_date,omitempty"`
	Warning string `json:"warning,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Count int    `json:"count,omitempty"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func (r bookRequest) toNewBook() core.NewBook {
	book := core.NewBook{
		CoverType:       r.CoverType,
		PublicationYear: r.PublicationYear,
		Genre:           r.Genre,
		PageCount:       r.PageCount,
		Condition:       r.ConditionState,
		Status:          r.Status,
		BorrowerPhone:   r.BorrowerPhone,
	}

	if r.Title != nil {
		book.Title = *r.Title
	}

	if r.Author != nil {
		book.Author = *r.Author
	}

	return book
}

func (r bookRequest) toBookPatch() core.BookPatch {
	return core.BookPatch{
		Title:           r.Title,
		Author:          r.Author,
		CoverType:       r.CoverType,
		PublicationYear: r.PublicationYear,
		Genre:           r.Genre,
		PageCount:       r.PageCount,
		Condition:       r.ConditionState,
	}
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}

	formatted := core.FormatDate(*t)

	return &formatted
}

func toBookResponse(entry entitystore.CatalogEntry) bookResponse {
	return bookResponse{
		ID:              entry.ID.String(),
		Title:           entry.Title,
		Author:          entry.Author,
		CoverType:       string(entry.CoverType),
		PublicationYear: entry.PublicationYear,
		Genre:           entry.Genre,
		PageCount:       entry.PageCount,
		ConditionState:  string(entry.Condition),
		Status:          string(entry.Status),
		BorrowedDate:    formatOptionalDate(entry.BorrowedDate),
		BorrowerPhone:   entry.BorrowerPhone,
		FirstName:       entry.BorrowerFirstName,
		LastName:        entry.BorrowerLastName,
	}
}

func toBookDetailsResponse(details bookdetails.BookDetails) bookResponse {
	response := toBookResponse(details.CatalogEntry)
	response.DueDate = formatOptionalDate(details.DueDate)

	return response
}

func toReaderResponse(reader entitystore.Reader) readerResponse {
	return readerResponse{
		Phone:            reader.Phone,
		FirstName:        reader.FirstName,
		LastName:         reader.LastName,
		BirthDate:        core.FormatDate(reader.BirthDate),
		RegistrationDate: core.FormatDate(reader.RegistrationDate),
	}
}

func toReaderDetailsResponse(details readerdetails.ReaderDetails) readerResponse {
	response := toReaderResponse(details.Reader)
	booksBorrowed := details.BooksBorrowed
	response.BooksBorrowed = &booksBorrowed

	return response
}

func toOverdueResponse(loan overduebooks.OverdueLoan) overdueResponse {
	return overdueResponse{
		ID:           loan.BookID.String(),
		Title:        loan.Title,
		Author:       loan.Author,
		BorrowedDate: core.FormatDate(loan.BorrowedDate),
		DueDate:      core.FormatDate(loan.DueDate),
		DaysOverdue:  loan.DaysBorrowed,
		ReaderPhone:  loan.ReaderPhone,
		FirstName:    loan.ReaderFirstName,
		LastName:     loan.ReaderLastName,
	}
}

func toStatsResponse(stats librarystats.LibraryStats) statsResponse {
	return statsResponse{
		TotalBooks:     stats.TotalBooks,
		AvailableBooks: stats.AvailableBooks,
		BorrowedBooks:  stats.BorrowedBooks,
		TotalReaders:   stats.TotalReaders,
		OverdueBooks:   stats.OverdueBooks,
	}
}
