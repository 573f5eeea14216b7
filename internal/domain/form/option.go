package form

// Option is a (label, value) pair served back to the platform for an
// external select. Values are task ids as decimal strings, or one of
// the sentinel tokens.
type Option struct {
	Label string
	Value string
}

// NoUserOption is the single placeholder served while no user has
// been picked in the dependent field.
func NoUserOption() Option {
	return Option{Label: "Pick a user first", Value: SentinelNoUser.String()}
}

// NoTasksOption is the single placeholder served when the picked user
// has no open tasks.
func NoTasksOption() Option {
	return Option{Label: "No open tasks for that user", Value: SentinelNoTasks.String()}
}

// ErrorOption is the single placeholder served when the task store
// could not be queried.
func ErrorOption() Option {
	return Option{Label: "Couldn't load tasks, try again", Value: SentinelError.String()}
}
