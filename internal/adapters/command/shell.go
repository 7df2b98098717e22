package command

import (
	"context"
	"io"

	"github.com/etc-dev/etc/internal/ports"
)

// Shell is the ports.Shell used by steps. It echoes command lines to the
// reporter when asked to and turns mutating commands into no-ops during a
// dry run.
type Shell struct {
	runner        ports.CommandRunner
	reporter      ports.Reporter
	output        io.Writer
	dryRun        bool
	printCommands bool
}

// ShellOption configures a Shell.
type ShellOption func(*Shell)

// WithDryRun suppresses every Exec call. Dry run implies printing commands.
func WithDryRun(enabled bool) ShellOption {
	return func(s *Shell) {
		s.dryRun = enabled
	}
}

// WithPrintCommands echoes each command line before it runs.
func WithPrintCommands(enabled bool) ShellOption {
	return func(s *Shell) {
		s.printCommands = enabled
	}
}

// WithOutput copies the output of Exec calls to w while they run, when the
// runner supports streaming. Query output is never copied.
func WithOutput(w io.Writer) ShellOption {
	return func(s *Shell) {
		s.output = w
	}
}

// NewShell creates a Shell that runs commands through runner and echoes
// them to reporter.
func NewShell(runner ports.CommandRunner, reporter ports.Reporter, opts ...ShellOption) *Shell {
	s := &Shell{
		runner:   runner,
		reporter: reporter,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DryRun reports whether mutating commands are suppressed.
func (s *Shell) DryRun() bool {
	return s.dryRun
}

// Query runs a read-only command. It runs during a dry run too.
func (s *Shell) Query(ctx context.Context, command string, args ...string) (ports.CommandResult, error) {
	return s.invoke(ctx, false, command, args)
}

// Exec runs a command that changes the system.
func (s *Shell) Exec(ctx context.Context, command string, args ...string) (ports.CommandResult, error) {
	return s.invoke(ctx, true, command, args)
}

func (s *Shell) invoke(ctx context.Context, mutating bool, command string, args []string) (ports.CommandResult, error) {
	if s.printCommands || s.dryRun {
		s.reporter.PrintCommand(ports.CommandCall{Command: command, Args: args})
	}
	if mutating && s.dryRun {
		return ports.CommandResult{ExitCode: 0}, nil
	}
	if mutating && s.output != nil {
		if streaming, ok := s.runner.(ports.StreamingRunner); ok {
			return streaming.Stream(ctx, s.output, command, args...)
		}
	}
	return s.runner.Run(ctx, command, args...)
}

// Ensure Shell implements ports.Shell.
var _ ports.Shell = (*Shell)(nil)
