package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/AntonStoeckl/library-lending-go/library/features/command/registerreader"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/removereader"
	"github.com/AntonStoeckl/library-lending-go/library/features/query/readerdetails"
	"github.com/AntonStoeckl/library-lending-go/library/features/query/registeredreaders"
	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

const (
	msgReaderRegistered = "reader registered"
	msgReaderRemoved    = "reader removed"
	paramPhone          = "phone"
	fieldDob            = "birth_date"
	reasonDobFormat     = "must be a date in YYYY-MM-DD format"
)

// parseDob accepts a plain date or a full RFC 3339 timestamp, as sent by date pickers. Empty means not given.
func parseDob(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}

	if date, err := core.ParseDate(raw); err == nil {
		return date, nil
	}

	timestamp, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, core.NewValidationError(fieldDob, reasonDobFormat)
	}

	return timestamp, nil
}

func (a *API) listReaders(c echo.Context) error {
	readers, err := a.handlers.RegisteredReaders.Handle(c.Request().Context(), registeredreaders.BuildQuery())
	if err != nil {
		return err
	}

	response := make([]readerResponse, 0, readers.Count)
	for _, reader := range readers.Readers {
		response = append(response, toReaderResponse(reader))
	}

	return c.JSON(http.StatusOK, response)
}

func (a *API) getReader(c echo.Context) error {
	details, err := a.handlers.ReaderDetails.Handle(c.Request().Context(), readerdetails.BuildQuery(c.Param(paramPhone)))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toReaderDetailsResponse(details))
}

func (a *API) registerReader(c echo.Context) error {
	var request readerRequest
	if err := c.Bind(&request); err != nil {
		return err
	}

	birthDate, err := parseDob(request.Dob)
	if err != nil {
		return err
	}

	result, err := a.handlers.RegisterReader.Handle(
		c.Request().Context(),
		registerreader.BuildCommand(request.Phone, request.FirstName, request.LastName, birthDate, a.clock()),
	)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, messageResponse{Message: msgReaderRegistered, ID: result.Phone})
}

func (a *API) removeReader(c echo.Context) error {
	result, err := a.handlers.RemoveReader.Handle(c.Request().Context(), removereader.BuildCommand(c.Param(paramPhone)))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: msgReaderRemoved, ID: result.Phone})
}
