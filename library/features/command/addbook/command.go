package addbook

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

const (
	commandType = "AddBook"
)

// Command represents the intent to add a book to the catalog.
type Command struct {
	BookID     uuid.UUID
	Book       core.NewBook
	OccurredAt time.Time
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
// The caller generates bookID, so it can be reported back without another read.
func BuildCommand(bookID uuid.UUID, book core.NewBook, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		Book:       book,
		OccurredAt: occurredAt,
	}
}
