package formatter

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyCommand is returned when a formatter command string has no words.
var ErrEmptyCommand = errors.New("formatter command is empty")

// ExecutionError reports a formatter invocation that could not run or exited
// with a non-zero status. It is fatal for the whole run.
type ExecutionError struct {
	// Name is the formatter executable.
	Name string

	// Args are the arguments of the failed invocation.
	Args []string

	// ExitCode is the process exit status, or -1 if it never ran.
	ExitCode int

	// Stderr is the captured diagnostic text.
	Stderr string

	// Err is the underlying start failure, if any.
	Err error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	cmdline := strings.Join(append([]string{e.Name}, e.Args...), " ")
	if e.Err != nil {
		return fmt.Sprintf("error running %s: %v", cmdline, e.Err)
	}
	msg := fmt.Sprintf("error running %s: exit status %d", cmdline, e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

// Unwrap returns the underlying start failure.
func (e *ExecutionError) Unwrap() error {
	return e.Err
}
