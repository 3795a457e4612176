package httpapi

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/AntonStoeckl/library-lending-go/library/features/command/addbook"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/changebookdetails"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/removebook"
	"github.com/AntonStoeckl/library-lending-go/library/features/query/bookdetails"
	"github.com/AntonStoeckl/library-lending-go/library/features/query/bookscatalog"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

const (
	msgBookAdded           = "book added"
	msgBookUpdated         = "book updated"
	msgBookRemoved         = "book removed"
	warnBookRemovedOnLoan  = "the book was on loan and its loan is gone with it"
	paramBookID            = "id"
	errMsgBookIDGeneration = "generate book id"
)

// bookIDParam parses the :id path parameter. A malformed id can not name an existing book.
func bookIDParam(c echo.Context) (uuid.UUID, error) {
	raw := c.Param(paramBookID)

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, core.NewBookNotFoundError(raw)
	}

	return id, nil
}

func (a *API) listBooks(c echo.Context) error {
	catalog, err := a.handlers.BooksCatalog.Handle(c.Request().Context(), bookscatalog.BuildQuery())
	if err != nil {
		return err
	}

	response := make([]bookResponse, 0, catalog.Count)
	for _, entry := range catalog.Books {
		response = append(response, toBookResponse(entry))
	}

	return c.JSON(http.StatusOK, response)
}

func (a *API) getBook(c echo.Context) error {
	bookID, err := bookIDParam(c)
	if err != nil {
		return err
	}

	details, err := a.handlers.BookDetails.Handle(c.Request().Context(), bookdetails.BuildQuery(bookID))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toBookDetailsResponse(details))
}

func (a *API) createBook(c echo.Context) error {
	var request bookRequest
	if err := c.Bind(&request); err != nil {
		return err
	}

	bookID, err := a.newID()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errMsgBookIDGeneration).SetInternal(err)
	}

	result, err := a.handlers.AddBook.Handle(
		c.Request().Context(),
		addbook.BuildCommand(bookID, request.toNewBook(), a.clock()),
	)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, messageResponse{Message: msgBookAdded, ID: result.BookID.String()})
}

func (a *API) updateBook(c echo.Context) error {
	bookID, err := bookIDParam(c)
	if err != nil {
		return err
	}

	var request bookRequest
	if err = c.Bind(&request); err != nil {
		return err
	}

	result, err := a.handlers.ChangeBookDetails.Handle(
		c.Request().Context(),
		changebookdetails.BuildCommand(bookID, request.toBookPatch(), a.clock()),
	)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: msgBookUpdated, ID: result.BookID.String()})
}

func (a *API) deleteBook(c echo.Context) error {
	bookID, err := bookIDParam(c)
	if err != nil {
		return err
	}

	result, err := a.handlers.RemoveBook.Handle(c.Request().Context(), removebook.BuildCommand(bookID))
	if err != nil {
		return err
	}

	response := messageResponse{Message: msgBookRemoved, ID: result.BookID.String()}
	if result.WasOnLoan {
		response.Warning = warnBookRemovedOnLoan
	}

	return c.JSON(http.StatusOK, response)
}
