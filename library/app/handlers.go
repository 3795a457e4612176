package app

import (
	"context"

	"github.com/AntonStoeckl/library-lending-go/library/features/command/addbook"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/changebookdetails"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/lendbook"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/registerreader"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/removebook"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/removereader"
	"github.com/AntonStoeckl/library-lending-go/library/features/command/returnbook"
	"github.com/AntonStoeckl/library-lending-go/library/features/query/bookdetails"
	"github.com/AntonStoeckl/library-lending-go/library/features/query/bookscatalog"
	"github.com/AntonStoeckl/library-lending-go/library/features/query/librarystats"
	"github.com/AntonStoeckl/library-lending-go/library/features/query/overduebooks"
	"github.com/AntonStoeckl/library-lending-go/library/features/query/readerdetails"
	"github.com/AntonStoeckl/library-lending-go/library/features/query/registeredreaders"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell/observable"
)

// Store is the union of the entity store operations the use cases need.
// Both memoryengine.Store and postgresengine.Store satisfy it.
type Store interface {
	addbook.Store
	changebookdetails.Store
	removebook.Store
	registerreader.Store
	removereader.Store
	lendbook.Store
	returnbook.Store
	bookscatalog.Store
	bookdetails.Store
	registeredreaders.Store
	readerdetails.Store
	overduebooks.Store
	librarystats.Store
	Ping(ctx context.Context) error
}

// Handlers holds one handler per use case.
type Handlers struct {
	AddBook           shell.CommandHandler[addbook.Command, addbook.Result]
	ChangeBookDetails shell.CommandHandler[changebookdetails.Command, changebookdetails.Result]
	RemoveBook        shell.CommandHandler[removebook.Command, removebook.Result]
	RegisterReader    shell.CommandHandler[registerreader.Command, registerreader.Result]
	RemoveReader      shell.CommandHandler[removereader.Command, removereader.Result]
	LendBook          shell.CommandHandler[lendbook.Command, lendbook.Result]
	ReturnBook        shell.CommandHandler[returnbook.Command, returnbook.Result]

	BooksCatalog      shell.QueryHandler[bookscatalog.Query, bookscatalog.BooksCatalog]
	BookDetails       shell.QueryHandler[bookdetails.Query, bookdetails.BookDetails]
	RegisteredReaders shell.QueryHandler[registeredreaders.Query, registeredreaders.RegisteredReaders]
	ReaderDetails     shell.QueryHandler[readerdetails.Query, readerdetails.ReaderDetails]
	OverdueBooks      shell.QueryHandler[overduebooks.Query, overduebooks.OverdueBooks]
	LibraryStats      shell.QueryHandler[librarystats.Query, librarystats.LibraryStats]
}

// Observability carries the optional collaborators for the observable wrappers. Nil fields are skipped.
type Observability struct {
	Logger           shell.Logger
	ContextualLogger shell.ContextualLogger
	Metrics          shell.MetricsCollector
	Tracing          shell.TracingCollector
}

// IsEmpty reports whether no collaborator is configured.
func (o Observability) IsEmpty() bool {
	return o.Logger == nil && o.ContextualLogger == nil && o.Metrics == nil && o.Tracing == nil
}

// NewHandlers builds all handlers over store. With a non-empty Observability every handler is wrapped.
func NewHandlers(store Store, obs Observability) (Handlers, error) {
	var removeBookOptions []removebook.Option
	if obs.Logger != nil {
		removeBookOptions = append(removeBookOptions, removebook.WithLogger(obs.Logger))
	}

	if obs.ContextualLogger != nil {
		removeBookOptions = append(removeBookOptions, removebook.WithContextualLogger(obs.ContextualLogger))
	}

	handlers := Handlers{
		AddBook:           addbook.NewCommandHandler(store),
		ChangeBookDetails: changebookdetails.NewCommandHandler(store),
		RemoveBook:        removebook.NewCommandHandler(store, removeBookOptions...),
		RegisterReader:    registerreader.NewCommandHandler(store),
		RemoveReader:      removereader.NewCommandHandler(store),
		LendBook:          lendbook.NewCommandHandler(store),
		ReturnBook:        returnbook.NewCommandHandler(store),
		BooksCatalog:      bookscatalog.NewQueryHandler(store),
		BookDetails:       bookdetails.NewQueryHandler(store),
		RegisteredReaders: registeredreaders.NewQueryHandler(store),
		ReaderDetails:     readerdetails.NewQueryHandler(store),
		OverdueBooks:      overduebooks.NewQueryHandler(store),
		LibraryStats:      librarystats.NewQueryHandler(store),
	}

	if obs.IsEmpty() {
		return handlers, nil
	}

	return wrapAll(handlers, obs)
}

func wrapAll(h Handlers, obs Observability) (Handlers, error) {
	var (
		wrapped Handlers
		err     error
	)

	if wrapped.AddBook, err = wrapCommand(h.AddBook, obs); err != nil {
		return Handlers{}, err
	}

	if wrapped.ChangeBookDetails, err = wrapCommand(h.ChangeBookDetails, obs); err != nil {
		return Handlers{}, err
	}

	if wrapped.RemoveBook, err = wrapCommand(h.RemoveBook, obs); err != nil {
		return Handlers{}, err
	}

	if wrapped.RegisterReader, err = wrapCommand(h.RegisterReader, obs); err != nil {
		return Handlers{}, err
	}

	if wrapped.RemoveReader, err = wrapCommand(h.RemoveReader, obs); err != nil {
		return Handlers{}, err
	}

	if wrapped.LendBook, err = wrapCommand(h.LendBook, obs); err != nil {
		return Handlers{}, err
	}

	if wrapped.ReturnBook, err = wrapCommand(h.ReturnBook, obs); err != nil {
		return Handlers{}, err
	}

	if wrapped.BooksCatalog, err = wrapQuery(h.BooksCatalog, obs); err != nil {
		return Handlers{}, err
	}

	if wrapped.BookDetails, err = wrapQuery(h.BookDetails, obs); err != nil {
		return Handlers{}, err
	}

	if wrapped.RegisteredReaders, err = wrapQuery(h.RegisteredReaders, obs); err != nil {
		return Handlers{}, err
	}

	if wrapped.ReaderDetails, err = wrapQuery(h.ReaderDetails, obs); err != nil {
		return Handlers{}, err
	}

	if wrapped.OverdueBooks, err = wrapQuery(h.OverdueBooks, obs); err != nil {
		return Handlers{}, err
	}

	if wrapped.LibraryStats, err = wrapQuery(h.LibraryStats, obs); err != nil {
		return Handlers{}, err
	}

	return wrapped, nil
}

func wrapCommand[C shell.Command, R any](
	handler shell.CommandHandler[C, R],
	obs Observability,
) (shell.CommandHandler[C, R], error) {
	var opts []observable.CommandOption[C, R]

	if obs.Logger != nil {
		opts = append(opts, observable.WithCommandLogging[C, R](obs.Logger))
	}

	if obs.ContextualLogger != nil {
		opts = append(opts, observable.WithCommandContextualLogging[C, R](obs.ContextualLogger))
	}

	if obs.Metrics != nil {
		opts = append(opts, observable.WithCommandMetrics[C, R](obs.Metrics))
	}

	if obs.Tracing != nil {
		opts = append(opts, observable.WithCommandTracing[C, R](obs.Tracing))
	}

	wrapper, err := observable.NewCommandWrapper(handler, opts...)
	if err != nil {
		return nil, err
	}

	return wrapper, nil
}

func wrapQuery[Q shell.Query, R any](
	handler shell.QueryHandler[Q, R],
	obs Observability,
) (shell.QueryHandler[Q, R], error) {
	var opts []observable.QueryOption[Q, R]

	if obs.Logger != nil {
		opts = append(opts, observable.WithQueryLogging[Q, R](obs.Logger))
	}

	if obs.ContextualLogger != nil {
		opts = append(opts, observable.WithQueryContextualLogging[Q, R](obs.ContextualLogger))
	}

	if obs.Metrics != nil {
		opts = append(opts, observable.WithQueryMetrics[Q, R](obs.Metrics))
	}

	if obs.Tracing != nil {
		opts = append(opts, observable.WithQueryTracing[Q, R](obs.Tracing))
	}

	wrapper, err := observable.NewQueryWrapper(handler, opts...)
	if err != nil {
		return nil, err
	}

	return wrapper, nil
}

// IsComplete reports whether every handler is set.
func (h Handlers) IsComplete() bool {
	return h.AddBook != nil && h.ChangeBookDetails != nil && h.RemoveBook != nil &&
		h.RegisterReader != nil && h.RemoveReader != nil && h.LendBook != nil && h.ReturnBook != nil &&
		h.BooksCatalog != nil && h.BookDetails != nil && h.RegisteredReaders != nil &&
		h.ReaderDetails != nil && h.OverdueBooks != nil && h.LibraryStats != nil
}
