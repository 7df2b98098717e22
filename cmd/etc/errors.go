package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/etc-dev/etc/internal/app"
	"github.com/etc-dev/etc/internal/domain/compiler"
	"github.com/etc-dev/etc/internal/domain/config"
	"github.com/etc-dev/etc/internal/domain/platform"
)

// Process exit codes. A failed step exits with its own code.
const (
	exitOK                  = 0
	exitFailure             = 1
	exitUsage               = 2
	exitUnsupportedPlatform = 3
	exitConfigNotFound      = 4
)

// usageError marks errors caused by the command line itself.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// exitError carries the exit code of a failed run.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("install failed with exit code %d", e.code)
}

// usageArgs wraps a cobra argument validator so its errors exit with the
// usage code.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}

func flagError(_ *cobra.Command, err error) error {
	return &usageError{err: err}
}

// exitCode maps an error returned by a command to the process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}

	var exitErr *exitError
	var usageErr *usageError
	switch {
	case errors.As(err, &exitErr):
		return exitErr.code
	case errors.As(err, &usageErr), errors.Is(err, app.ErrRemoteRequired):
		return exitUsage
	case errors.Is(err, platform.ErrUnsupported):
		return exitUnsupportedPlatform
	case config.IsUserError(err, config.ErrCodeConfigNotFound):
		return exitConfigNotFound
	default:
		return exitFailure
	}
}

// formatError returns a user-friendly error message.
// With verbose=false: shows only the user message and suggestion.
// With verbose=true: also shows the underlying technical error.
func formatError(err error) string {
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.Error()
	}

	var userErr *config.UserError
	if errors.As(err, &userErr) {
		msg := userErr.Message
		if userErr.Context != "" {
			msg += fmt.Sprintf(" (at %s)", userErr.Context)
		}
		if userErr.Suggestion != "" {
			msg += fmt.Sprintf("\n\nSuggestion: %s", userErr.Suggestion)
		}
		if verbosity > 0 && userErr.Underlying != nil {
			msg += fmt.Sprintf("\n\nTechnical details: %v", userErr.Underlying)
		}
		return msg
	}

	var stepErr *compiler.StepError
	if errors.As(err, &stepErr) {
		msg := stepErr.Message
		if stepErr.Step != "" {
			msg += fmt.Sprintf(" (at %s)", stepErr.Step)
		}
		if stepErr.Underlying != nil {
			msg += fmt.Sprintf(": %v", stepErr.Underlying)
		}
		if stepErr.Suggestion != "" {
			msg += fmt.Sprintf("\n\nSuggestion: %s", stepErr.Suggestion)
		}
		if verbosity > 0 {
			msg += fmt.Sprintf("\n\nTechnical details: %s", stepErr.Format())
		}
		return msg
	}

	return err.Error()
}

// printErrorTo prints an error message to the given writer.
func printErrorTo(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %s\n", formatError(err))
}
