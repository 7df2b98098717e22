// Package app provides the main application logic for etc.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/etc-dev/etc/internal/adapters/command"
	"github.com/etc-dev/etc/internal/adapters/filesystem"
	"github.com/etc-dev/etc/internal/adapters/logging"
	"github.com/etc-dev/etc/internal/adapters/terminal"
	"github.com/etc-dev/etc/internal/domain/compiler"
	"github.com/etc-dev/etc/internal/domain/config"
	"github.com/etc-dev/etc/internal/domain/execution"
	"github.com/etc-dev/etc/internal/domain/platform"
	"github.com/etc-dev/etc/internal/ports"
	"github.com/etc-dev/etc/internal/provider/brew"
	"github.com/etc-dev/etc/internal/provider/packages"
)

// Etc is the main application orchestrator.
type Etc struct {
	opts      config.Options
	fs        ports.FileSystem
	runner    ports.CommandRunner
	registry  *compiler.Registry
	logger    ports.Logger
	reporter  ports.Reporter
	out       io.Writer
	runID     string
	env       map[string]string
	lifecycle *lifecycle
}

// Option configures an Etc.
type Option func(*Etc)

// WithFileSystem sets the filesystem configuration files are read from.
func WithFileSystem(fs ports.FileSystem) Option {
	return func(e *Etc) {
		e.fs = fs
	}
}

// WithCommandRunner sets the runner subprocesses go through. Without it a
// real runner carrying the environment file's variables is used.
func WithCommandRunner(runner ports.CommandRunner) Option {
	return func(e *Etc) {
		e.runner = runner
	}
}

// WithRegistry replaces the default runner registry.
func WithRegistry(registry *compiler.Registry) Option {
	return func(e *Etc) {
		e.registry = registry
	}
}

// WithLogger sets the logger.
func WithLogger(logger ports.Logger) Option {
	return func(e *Etc) {
		e.logger = logger
	}
}

// WithReporter sets the progress reporter.
func WithReporter(reporter ports.Reporter) Option {
	return func(e *Etc) {
		e.reporter = reporter
	}
}

// WithOutput sets where plans and command output are printed.
func WithOutput(w io.Writer) Option {
	return func(e *Etc) {
		e.out = w
	}
}

// WithRunID sets the run id instead of generating one.
func WithRunID(id string) Option {
	return func(e *Etc) {
		e.runID = id
	}
}

// DefaultRegistry returns the registry with every built-in runner. Homebrew
// is the package manager on both darwin and linux.
func DefaultRegistry() *compiler.Registry {
	homebrew := brew.New()
	return compiler.NewRegistry(
		packages.NewRunner(
			packages.WithManager(platform.Darwin, homebrew),
			packages.WithManager(platform.Linux, homebrew),
		),
	)
}

// New creates a new Etc application for opts. opts are normalized.
func New(opts config.Options, options ...Option) (*Etc, error) {
	e := &Etc{
		opts: opts.Normalize(),
		out:  os.Stdout,
	}
	for _, opt := range options {
		opt(e)
	}

	if e.fs == nil {
		e.fs = filesystem.NewRealFileSystem()
	}
	if e.registry == nil {
		e.registry = DefaultRegistry()
	}
	if e.reporter == nil {
		e.reporter = terminal.New(terminal.WithOutput(e.out), terminal.WithColor(e.opts.Colors))
	}
	if e.logger == nil {
		e.logger = logging.NewNopLogger()
	}
	if e.runID == "" {
		e.runID = uuid.NewString()
	}
	e.logger = e.logger.With(ports.F("run", e.runID))

	lc, err := newLifecycle(e.runID)
	if err != nil {
		return nil, err
	}
	e.lifecycle = lc

	return e, nil
}

// Options returns the normalized options.
func (e *Etc) Options() config.Options {
	return e.opts
}

// RunID returns the id attached to every log entry of this Etc.
func (e *Etc) RunID() string {
	return e.runID
}

// State returns the state of the current or last run.
func (e *Etc) State() State {
	return e.lifecycle.state()
}

// LastError returns the error that failed the last run, if any.
func (e *Etc) LastError() error {
	return e.lifecycle.err()
}

// Env returns the variables loaded from the environment file by the last
// run.
func (e *Etc) Env() map[string]string {
	env := make(map[string]string, len(e.env))
	for k, v := range e.env {
		env[k] = v
	}
	return env
}

// Install loads the configuration, resolves its steps and runs them. The
// returned error is set when the configuration cannot be loaded or
// resolved; step failures are reported through Result.Code.
func (e *Etc) Install(ctx context.Context) (execution.Result, error) {
	e.reporter.StartPhase("Starting the install suite")

	res, err := e.Resolve(ctx)
	if err != nil {
		return execution.Result{Code: execution.ExitFailure}, err
	}

	e.lifecycle.send(EventExecute)
	if e.opts.DryRun {
		e.PrintPlan(res)
	}

	e.reporter.StartPhase("Running the install steps")
	result := execution.NewExecutor(e.registry).Execute(e.runContext(ctx), res)
	if !result.Success() {
		failure := fmt.Errorf("install failed with exit code %d", result.Code)
		if step, ok := result.Failed(); ok && step.Error() != nil {
			failure = step.Error()
		}
		e.lifecycle.fail(failure)
		return result, nil
	}

	e.lifecycle.send(EventSucceed)
	if !res.IsEmpty() {
		e.reporter.CompletePhase("Install complete")
	}
	return result, nil
}

// Resolve loads the configuration and environment files and resolves the
// step configurations without running anything.
func (e *Etc) Resolve(ctx context.Context) (*compiler.Resolution, error) {
	e.lifecycle.send(EventLoad)

	path := e.opts.ConfigPath()
	e.logger.Debug(ctx, "loading configuration", ports.F("path", path))
	doc, err := config.NewLoader(e.fs).Load(path)
	if err != nil {
		e.lifecycle.fail(err)
		return nil, err
	}

	env, err := config.LoadEnvFile(e.fs, e.opts.EnvFilePath())
	if err != nil {
		e.lifecycle.fail(err)
		return nil, err
	}
	e.env = env
	if len(env) > 0 {
		e.logger.Debug(ctx, "loaded environment file",
			ports.F("path", e.opts.EnvFilePath()),
			ports.F("variables", len(env)),
		)
	}

	e.lifecycle.send(EventResolve)
	parseCtx := compiler.NewParseContext(ctx, e.opts.Platform).WithLogger(e.logger)
	res, err := compiler.NewCompiler(e.registry).Resolve(parseCtx, doc)
	if err != nil {
		e.lifecycle.fail(err)
		return nil, err
	}

	e.logger.Debug(ctx, "resolved configuration", ports.F("steps", res.Len()))
	return res, nil
}

func (e *Etc) runContext(ctx context.Context) compiler.RunContext {
	return compiler.NewRunContext(ctx, e.opts.Platform, e.shell()).
		WithDryRun(e.opts.DryRun).
		WithLogger(e.logger).
		WithReporter(e.reporter)
}

func (e *Etc) shell() *command.Shell {
	return command.NewShell(e.commandRunner(), e.reporter,
		command.WithDryRun(e.opts.DryRun),
		command.WithPrintCommands(e.opts.PrintCommands),
		command.WithOutput(e.out),
	)
}

func (e *Etc) commandRunner() ports.CommandRunner {
	if e.runner != nil {
		return e.runner
	}
	return command.NewRealRunner().WithEnv(e.env)
}

// printf is a helper that writes to the output writer, ignoring errors.
func (e *Etc) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(e.out, format, args...)
}
