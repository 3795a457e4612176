package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

const (
	errMsgInternal      = "internal server error"
	errMsgRouteNotFound = "route not found"
	logMsgRequestFailed = "request failed"
)

// statusFor maps the core error taxonomy to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrStoreFailure):
		return http.StatusInternalServerError
	case errors.Is(err, core.ErrValidationFailed):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrNotFound),
		errors.Is(err, core.ErrBookNotFound),
		errors.Is(err, core.ErrReaderNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrDuplicatePhone),
		errors.Is(err, core.ErrBookUnavailable),
		errors.Is(err, core.ErrHasActiveLoans):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (a *API) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := a.errorResponseFor(err)

	if status >= http.StatusInternalServerError && a.logger != nil {
		a.logger.Error(logMsgRequestFailed,
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err.Error())
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}

	if err != nil && a.logger != nil {
		a.logger.Error(logMsgRequestFailed, "error", err.Error())
	}
}

func (a *API) errorResponseFor(err error) (int, errorResponse) {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.Code {
		case http.StatusNotFound:
			return httpErr.Code, errorResponse{Error: errMsgRouteNotFound}
		case http.StatusInternalServerError:
			return httpErr.Code, errorResponse{Error: errMsgInternal}
		default:
			if msg, ok := httpErr.Message.(string); ok {
				return httpErr.Code, errorResponse{Error: msg}
			}

			return httpErr.Code, errorResponse{Error: http.StatusText(httpErr.Code)}
		}
	}

	status := statusFor(err)
	if status == http.StatusInternalServerError {
		return status, errorResponse{Error: errMsgInternal}
	}

	body := errorResponse{Error: err.Error()}

	var validationErr *core.ValidationError
	if errors.As(err, &validationErr) {
		body.Field = validationErr.Field
	}

	var activeLoansErr *core.ActiveLoansError
	if errors.As(err, &activeLoansErr) {
		body.Count = activeLoansErr.Count
	}

	return status, body
}
