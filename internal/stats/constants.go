package stats

// SearchCommand is the command whose uses are reported as searches run
const SearchCommand = "search"

// DefaultTopCommands is the number of commands listed by TopCommands when n <= 0
const DefaultTopCommands = 3

// Log messages
const (
	LogMsgCommandRecorded = "Command recorded"
)
