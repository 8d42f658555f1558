package errors

import (
	"fmt"
)

// ListingError reports a fatal failure while building the project
// inventory. Listing failures abort the whole run: no partial
// inventory is ever searched.
type ListingError struct {
	GroupPath string
	Err       error
}

func (e *ListingError) Error() string {
	return fmt.Sprintf("listing projects of group %q failed: %v", e.GroupPath, e.Err)
}

func (e *ListingError) Unwrap() error { return e.Err }

func NewListingError(groupPath string, err error) *ListingError {
	return &ListingError{GroupPath: groupPath, Err: err}
}

// CommandError carries the process exit code for a failed command.
type CommandError struct {
	ExitCode    int
	CommonError error
}

func (e *CommandError) Error() string { return e.CommonError.Error() }

func (e *CommandError) Unwrap() error { return e.CommonError }

// NewCommandError creates a new CommandError instance, encapsulating the error and exit code.
func NewCommandError(err error, code int) *CommandError {
	return &CommandError{
		ExitCode:    code,
		CommonError: err,
	}
}
