package changebookdetails

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

const (
	commandType = "ChangeBookDetails"
)

// Command represents the intent to change descriptive fields of a book.
type Command struct {
	BookID     uuid.UUID
	Patch      core.BookPatch
	OccurredAt time.Time
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID uuid.UUID, patch core.BookPatch, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		Patch:      patch,
		OccurredAt: occurredAt,
	}
}
