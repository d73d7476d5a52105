// internal/cmdutil/exit.go
package cmdutil

import (
	"context"
	"errors"
	"fmt"

	"telogc/internal/writers"
)

// Process exit codes shared by every tool.
const (
	ExitOK          = 0
	ExitUsage       = 2
	ExitFailure     = 3
	ExitInterrupted = 130
)

// UsageError marks bad invocations: missing or malformed arguments and flags.
type UsageError struct{ Err error }

func (e UsageError) Error() string { return e.Err.Error() }
func (e UsageError) Unwrap() error { return e.Err }

// Usagef builds a UsageError from a format string.
func Usagef(format string, a ...any) error {
	return UsageError{Err: fmt.Errorf(format, a...)}
}

// IsUsage reports whether err is (or wraps) a UsageError.
func IsUsage(err error) bool {
	var u UsageError
	return errors.As(err, &u)
}

// ExitCode maps a run error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case writers.IsBrokenPipe(err):
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case IsUsage(err):
		return ExitUsage
	}
	return ExitFailure
}
