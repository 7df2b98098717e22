package compiler

import (
	"context"

	"github.com/etc-dev/etc/internal/domain/platform"
	"github.com/etc-dev/etc/internal/ports"
)

// ParseContext provides context for step validation.
type ParseContext struct {
	ctx      context.Context
	platform platform.ID
	logger   ports.Logger
}

// NewParseContext creates a ParseContext for the given current platform.
func NewParseContext(ctx context.Context, current platform.ID) ParseContext {
	return ParseContext{ctx: ctx, platform: current}
}

// Context returns the underlying context.Context.
func (p ParseContext) Context() context.Context {
	return p.ctx
}

// Platform returns the platform of the running machine.
func (p ParseContext) Platform() platform.ID {
	return p.platform
}

// Logger returns the diagnostics logger. It is never nil.
func (p ParseContext) Logger() ports.Logger {
	if p.logger == nil {
		return discardLogger{}
	}
	return p.logger
}

// WithLogger returns a new ParseContext with the logger set.
func (p ParseContext) WithLogger(logger ports.Logger) ParseContext {
	n := p
	n.logger = logger
	return n
}

// RunContext provides context for step execution.
type RunContext struct {
	ctx      context.Context
	platform platform.ID
	dryRun   bool
	shell    ports.Shell
	logger   ports.Logger
	reporter ports.Reporter
}

// NewRunContext creates a RunContext that executes commands through shell.
func NewRunContext(ctx context.Context, current platform.ID, shell ports.Shell) RunContext {
	return RunContext{
		ctx:      ctx,
		platform: current,
		shell:    shell,
	}
}

// Context returns the underlying context.Context.
func (r RunContext) Context() context.Context {
	return r.ctx
}

// Platform returns the platform of the running machine.
func (r RunContext) Platform() platform.ID {
	return r.platform
}

// DryRun returns whether mutating commands are suppressed.
func (r RunContext) DryRun() bool {
	return r.dryRun
}

// Shell returns the command execution capability.
func (r RunContext) Shell() ports.Shell {
	return r.shell
}

// Logger returns the diagnostics logger. It is never nil.
func (r RunContext) Logger() ports.Logger {
	if r.logger == nil {
		return discardLogger{}
	}
	return r.logger
}

// Reporter returns the progress reporter. It is never nil.
func (r RunContext) Reporter() ports.Reporter {
	if r.reporter == nil {
		return discardReporter{}
	}
	return r.reporter
}

// WithDryRun returns a new RunContext with the dry-run flag set.
func (r RunContext) WithDryRun(dryRun bool) RunContext {
	n := r
	n.dryRun = dryRun
	return n
}

// WithLogger returns a new RunContext with the logger set.
func (r RunContext) WithLogger(logger ports.Logger) RunContext {
	n := r
	n.logger = logger
	return n
}

// WithReporter returns a new RunContext with the reporter set.
func (r RunContext) WithReporter(reporter ports.Reporter) RunContext {
	n := r
	n.reporter = reporter
	return n
}

// ParseContext derives the matching ParseContext.
func (r RunContext) ParseContext() ParseContext {
	return NewParseContext(r.ctx, r.platform).WithLogger(r.logger)
}

type discardLogger struct{}

func (discardLogger) Trace(context.Context, string, ...ports.Field) {}
func (discardLogger) Debug(context.Context, string, ...ports.Field) {}
func (discardLogger) Info(context.Context, string, ...ports.Field) {}
func (discardLogger) Warn(context.Context, string, ...ports.Field) {}
func (discardLogger) Error(context.Context, string, ...ports.Field) {}
func (d discardLogger) With(...ports.Field) ports.Logger { return d }
func (discardLogger) Level() ports.Level { return ports.LevelError }
func (discardLogger) SetLevel(ports.Level) {}

type discardReporter struct{}

func (discardReporter) StartPhase(string) {}
func (discardReporter) CompletePhase(string) {}
func (discardReporter) StartStep(string) {}
func (discardReporter) CompleteStep(string) {}
func (discardReporter) StartTask(string) {}
func (discardReporter) CompleteTask(string) {}
func (discardReporter) PrintCommand(ports.CommandCall) {}
