package httpapi

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/AntonStoeckl/library-lending-go/library/app"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
)

// ErrMissingDependency is returned when a handler or the pinger is missing.
var ErrMissingDependency = errors.New("all handlers and the pinger must be set")

// Pinger reports whether the entity store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// API serves the library use cases over HTTP.
type API struct {
	handlers    app.Handlers
	pinger      Pinger
	clock       shell.Clock
	newID       func() (uuid.UUID, error)
	logger      shell.Logger
}

// Option defines a functional option for configuring the API.
type Option func(*API) error

// WithClock sets the clock that decides "today" for lending, registration, and overdue reports.
func WithClock(clock shell.Clock) Option {
	return func(a *API) error {
		a.clock = clock
		return nil
	}
}

// WithIDGenerator sets the generator for new book ids.
func WithIDGenerator(newID func() (uuid.UUID, error)) Option {
	return func(a *API) error {
		a.newID = newID
		return nil
	}
}

// WithLogger sets the logger for internal server errors.
func WithLogger(logger shell.Logger) Option {
	return func(a *API) error {
		a.logger = logger
		return nil
	}
}

// NewAPI creates the API. By default it uses the system clock and UUIDv7 ids.
func NewAPI(handlers app.Handlers, pinger Pinger, options ...Option) (*API, error) {
	if !handlers.IsComplete() || pinger == nil {
		return nil, ErrMissingDependency
	}

	api := &API{
		handlers: handlers,
		pinger:   pinger,
		clock:    shell.SystemClock,
		newID:    uuid.NewV7,
	}

	for _, option := range options {
		if err := option(api); err != nil {
			return nil, err
		}
	}

	return api, nil
}

// NewEcho creates an echo instance with the JSON serializer, the error handler, and all routes registered.
func (a *API) NewEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = JSONSerializer{}
	e.HTTPErrorHandler = a.handleError

	a.Register(e)

	return e
}

// Register adds all routes to e.
func (a *API) Register(e *echo.Echo) {
	api := e.Group("/api")

	api.GET("/books", a.listBooks)
	api.POST("/books", a.createBook)
	api.GET("/books/:id", a.getBook)
	api.PUT("/books/:id", a.updateBook)
	api.DELETE("/books/:id", a.deleteBook)

	api.GET("/readers", a.listReaders)
	api.POST("/readers", a.registerReader)
	api.GET("/readers/:phone", a.getReader)
	api.DELETE("/readers/:phone", a.removeReader)

	api.POST("/borrow", a.borrowBook)
	api.POST("/return", a.returnBook)

	api.GET("/stats", a.stats)
	api.GET("/overdue", a.listOverdue)
	api.GET("/health", a.health)
}
