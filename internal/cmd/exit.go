package cmd

import "fmt"

// Process exit codes of the conversion commands.
const (
	ExitInputMissing   = 2
	ExitCubeMissing    = 3
	ExitPartUnresolved = 4
)

// ExitError ends the process with Code after reporting Err.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%v (exit code %d)", e.Err, e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

func exitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}
