package cli

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrNoContext indicates the calling execution unit has no active context.
	ErrNoContext = errors.New("no active context")

	// ErrMissingObject indicates a required typed context object is absent.
	ErrMissingObject = errors.New("missing context object")

	// ErrUsage indicates the invocation could not be dispatched, such as an
	// unknown subcommand.
	ErrUsage = errors.New("usage error")
)

// ExitError carries an explicit exit code requested via Context.Exit.
// It is not an application fault: it unwinds through scope cleanup
// unchanged and drivers translate it into a final status.
type ExitError struct {
	Code int
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("exit with status %d", e.Code)
}

// ExitCode extracts an explicit exit code from an error chain.
// The second return is false when err does not represent an explicit exit.
func ExitCode(err error) (int, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}

	return 0, false
}

// MissingObjectError reports that a command body required a typed context
// object that no context in the ancestor chain holds. This is a fatal
// configuration error: the root command should have created the object, or
// the injection wrapper should use ensure.
type MissingObjectError struct {
	Type string
}

// Error implements the error interface.
func (e *MissingObjectError) Error() string {
	return fmt.Sprintf(
		"a context object of type %s was required but is not present in the context chain",
		e.Type,
	)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *MissingObjectError) Unwrap() error {
	return ErrMissingObject
}

// UsageError reports a dispatch problem for a command invocation.
type UsageError struct {
	Command string
	Message string
}

// Error implements the error interface.
func (e *UsageError) Error() string {
	if e.Command != "" {
		return fmt.Sprintf("%s: %s", e.Command, e.Message)
	}

	return e.Message
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UsageError) Unwrap() error {
	return ErrUsage
}
