package removereader

const (
	commandType = "RemoveReader"
)

// Command represents the intent to remove a registered reader.
type Command struct {
	Phone string
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(phone string) Command {
	return Command{Phone: phone}
}
