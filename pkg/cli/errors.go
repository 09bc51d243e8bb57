package cli

import (
	"errors"
	"fmt"

	"mercator-hq/facesconfig/pkg/config"
	fcErrors "mercator-hq/facesconfig/pkg/facesconfig/errors"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitConfig      = 3
	ExitDocument    = 4
	ExitIO          = 5
	ExitUnsupported = 6
)

// CommandError is a failed command.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{Command: command, Err: err}
}

// UsageError is a bad invocation.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

// Usagef creates a UsageError.
func Usagef(format string, args ...any) *UsageError {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// ExitCode maps an error to the process exit code. Ingestion errors are
// classified by type so scripts can tell a broken document from a missing
// one.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var usage *UsageError
	if errors.As(err, &usage) {
		return ExitUsage
	}
	var cfgErr config.ValidationError
	if errors.As(err, &cfgErr) {
		return ExitConfig
	}

	var list *fcErrors.ErrorList
	if errors.As(err, &list) && len(list.Errors) > 0 {
		err = list.Errors[0]
	}
	var fe *fcErrors.Error
	if errors.As(err, &fe) {
		switch fe.Type {
		case fcErrors.ErrorTypeIO:
			return ExitIO
		case fcErrors.ErrorTypeUnsupported:
			return ExitUnsupported
		default:
			return ExitDocument
		}
	}
	return ExitFailure
}
