package errors

import "fmt"

// Exit codes surfaced by the CLI boundary.
const (
	ExitOK              = 0
	ExitError           = 1
	ExitFindingsPresent = 2
)

// CommandError carries an exit code along the error path so the root command
// can turn a domain outcome into a process status without string matching.
type CommandError struct {
	ExitCode int
	Message  string
}

func (e *CommandError) Error() string {
	return e.Message
}

// NewCommandError wraps err with the given exit code.
func NewCommandError(err error, code int) *CommandError {
	return &CommandError{
		ExitCode: code,
		Message:  err.Error(),
	}
}

// NewFindingsError signals that a scan completed but flagged content, for
// callers running with fail-on-findings semantics.
func NewFindingsError(count int) *CommandError {
	return NewCommandError(fmt.Errorf("scan flagged %d hidden character finding(s)", count), ExitFindingsPresent)
}
