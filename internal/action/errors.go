package action

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCommand means the command was empty after placeholder
	// substitution and trimming.
	ErrEmptyCommand = errors.New("action command is empty")

	// ErrPathEncoding means the affected path cannot be rendered as valid
	// text for substitution.
	ErrPathEncoding = errors.New("path is not valid text")
)

// ExecError reports a spawn failure or nonzero exit. Command is the final
// string after substitution.
type ExecError struct {
	Command string
	Err     error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("run command %q: %v", e.Command, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}
