// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
	"io"
	"strings"
)

// CommandResult represents the result of executing a shell command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success returns true if the command exited with code 0.
func (r CommandResult) Success() bool {
	return r.ExitCode == 0
}

// Lines returns the non-empty, trimmed lines of stdout.
func (r CommandResult) Lines() []string {
	lines := make([]string, 0)
	for _, line := range strings.Split(r.Stdout, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// CommandCall records a command invocation.
type CommandCall struct {
	Command string
	Args    []string
}

// String returns the command line as it would be typed in a shell.
func (c CommandCall) String() string {
	if len(c.Args) == 0 {
		return c.Command
	}
	return c.Command + " " + strings.Join(c.Args, " ")
}

// CommandRunner executes shell commands.
type CommandRunner interface {
	Run(ctx context.Context, command string, args ...string) (CommandResult, error)
}

// StreamingRunner is a CommandRunner that can also copy a command's stdout
// and stderr to w while it runs. The result still carries both streams.
type StreamingRunner interface {
	CommandRunner
	Stream(ctx context.Context, w io.Writer, command string, args ...string) (CommandResult, error)
}

// Shell runs commands on behalf of steps.
//
// Query is for read-only commands and always executes, including during a
// dry run, so that steps can still report what would change. Exec is for
// commands that mutate the system; in dry-run mode it is only echoed.
type Shell interface {
	Query(ctx context.Context, command string, args ...string) (CommandResult, error)
	Exec(ctx context.Context, command string, args ...string) (CommandResult, error)
}
