package httpapi

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/AntonStoeckl/library-lending-go/library/features/command/lendbook"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/returnbook"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

const (
	msgBookLent     = "book lent"
	msgBookReturned = "book returned"
	fieldBookID     = "book_id"
	fieldPhone      = "phone"
)

func requiredBookID(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, core.NewValidationError(fieldBookID, "is required")
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, core.NewValidationError(fieldBookID, "must be a UUID")
	}

	return id, nil
}

func (a *API) borrowBook(c echo.Context) error {
	var request borrowRequest
	if err := c.Bind(&request); err != nil {
		return err
	}

	bookID, err := requiredBookID(request.BookID)
	if err != nil {
		return err
	}

	phone := strings.TrimSpace(request.Phone)
	if phone == "" {
		return core.NewValidationError(fieldPhone, "is required")
	}

	result, err := a.handlers.LendBook.Handle(c.Request().Context(), lendbook.BuildCommand(bookID, phone, a.clock()))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{
		Message: msgBookLent,
		ID:      result.BookID.String(),
		DueDate: core.FormatDate(result.DueDate),
	})
}

func (a *API) returnBook(c echo.Context) error {
	var request returnRequest
	if err := c.Bind(&request); err != nil {
		return err
	}

	bookID, err := requiredBookID(request.BookID)
	if err != nil {
		return err
	}

	result, err := a.handlers.ReturnBook.Handle(c.Request().Context(), returnbook.BuildCommand(bookID))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: msgBookReturned, ID: result.BookID.String()})
}
