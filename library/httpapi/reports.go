package httpapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/AntonStoeckl/library-lending-go/library/features/query/librarystats"
	"github.com/AntonStoeckl/library-lending-go/library/features/query/overduebooks"
)

const (
	healthStatusOK       = "ok"
	healthStatusError    = "error"
	healthMsgOK          = "library API is running"
	healthMsgStoreFailed = "entity store is not reachable"
)

func (a *API) stats(c echo.Context) error {
	stats, err := a.handlers.LibraryStats.Handle(c.Request().Context(), librarystats.BuildQuery(a.clock()))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toStatsResponse(stats))
}

func (a *API) listOverdue(c echo.Context) error {
	overdue, err := a.handlers.OverdueBooks.Handle(c.Request().Context(), overduebooks.BuildQuery(a.clock()))
	if err != nil {
		return err
	}

	response := make([]overdueResponse, 0, overdue.Count)
	for _, loan := range overdue.Loans {
		response = append(response, toOverdueResponse(loan))
	}

	return c.JSON(http.StatusOK, response)
}

func (a *API) health(c echo.Context) error {
	now := a.clock().UTC().Format(time.RFC3339)

	if err := a.pinger.Ping(c.Request().Context()); err != nil {
		if a.logger != nil {
			a.logger.Error(healthMsgStoreFailed, "error", err.Error())
		}

		return c.JSON(http.StatusServiceUnavailable, healthResponse{
			Status:    healthStatusError,
			Message:   healthMsgStoreFailed,
			Timestamp: now,
		})
	}

	return c.JSON(http.StatusOK, healthResponse{Status: healthStatusOK, Message: healthMsgOK, Timestamp: now})
}
