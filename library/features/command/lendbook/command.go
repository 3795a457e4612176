package lendbook

import (
	"time"

	"github.com/google/uuid"
)

const (
	commandType = "LendBook"
)

// Command represents the intent to lend a book to a registered reader.
type Command struct {
	BookID      uuid.UUID
	ReaderPhone string
	OccurredAt  time.Time
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID uuid.UUID, readerPhone string, occurredAt time.Time) Command {
	return Command{
		BookID:      bookID,
		ReaderPhone: readerPhone,
		OccurredAt:  occurredAt,
	}
}
