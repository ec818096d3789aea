// Package action renders command templates and runs them as isolated
// subprocesses, capturing the outcome for diagnostics.
package action

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"unicode/utf8"
)

// Placeholder is replaced with the affected path at every occurrence in a
// command template.
const Placeholder = "{}"

// Outcome describes a finished command. Stdout and Stderr are captured for
// logging only; callers must not branch on them.
type Outcome struct {
	Success  bool
	Stdout   string
	Stderr   string
	ExitCode int
}

// Render substitutes the path into the template. It fails when the path is
// not valid text or the substituted command is blank.
func Render(template, path string) (string, error) {
	if !utf8.ValidString(path) {
		return "", fmt.Errorf("substitute path %q: %w", path, ErrPathEncoding)
	}
	command := strings.ReplaceAll(template, Placeholder, path)
	if strings.TrimSpace(command) == "" {
		return "", ErrEmptyCommand
	}
	return command, nil
}

// Execute renders the template for path and runs it through the platform's
// default command interpreter with stdin from the null device and both output
// streams captured. It blocks until the subprocess exits; each invocation is
// independent and at-most-once. The Outcome is returned alongside the error
// so callers can log captured output from failed runs.
func Execute(ctx context.Context, template, path string) (Outcome, error) {
	command, err := Render(template, path)
	if err != nil {
		return Outcome{}, err
	}

	cmd := interpreterCommand(ctx, command)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	outcome := Outcome{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if runErr != nil {
		outcome.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			outcome.ExitCode = exitErr.ExitCode()
		}
		return outcome, &ExecError{Command: command, Err: runErr}
	}

	outcome.Success = true
	if cmd.ProcessState != nil {
		outcome.ExitCode = cmd.ProcessState.ExitCode()
	}
	return outcome, nil
}
