package registerreader

import (
	"time"

	"github.com/AntonStoeckl/library-lending-go/library/shared/core"
)

const (
	commandType = "RegisterReader"
)

// Command represents the intent to register a reader.
type Command struct {
	Reader     core.NewReader
	OccurredAt time.Time
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(phone, firstName, lastName string, birthDate, occurredAt time.Time) Command {
	return Command{
		Reader: core.NewReader{
			Phone:     phone,
			FirstName: firstName,
			LastName:  lastName,
			BirthDate: birthDate,
		},
		OccurredAt: occurredAt,
	}
}
