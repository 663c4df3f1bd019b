package cli

import (
	"fmt"

	"github.com/matzehuels/cargo-abc/pkg/errors"
)

// ExitError carries a process exit code out of a command. The message has
// already been printed when it is returned.
type ExitError struct {
	Code int
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// fail prints err and converts it into an exit status of 1.
func (c *CLI) fail(err error) error {
	printError(c.Err, "%s", errors.UserMessage(err))
	return &ExitError{Code: 1, Err: err}
}
