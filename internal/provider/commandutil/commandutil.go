// Package commandutil classifies subprocess errors.
package commandutil

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// IsCommandNotFound reports whether an error indicates a missing executable.
func IsCommandNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, exec.ErrNotFound) {
		return true
	}
	var execErr *exec.Error
	if errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound) {
		return true
	}
	var pathErr *os.PathError
	if errors.As(err, &pathErr) && errors.Is(pathErr.Err, os.ErrNotExist) {
		return true
	}
	return false
}

// Annotate wraps a spawn error of command with a hint when the executable
// is missing. Other errors are returned unchanged.
func Annotate(command, hint string, err error) error {
	if !IsCommandNotFound(err) {
		return err
	}
	return fmt.Errorf("%s is not installed or not on PATH (%s): %w", command, hint, err)
}
