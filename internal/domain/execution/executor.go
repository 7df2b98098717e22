package execution

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/etc-dev/etc/internal/domain/compiler"
	"github.com/etc-dev/etc/internal/ports"
)

// Exit codes produced by the engine itself.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// Executor runs resolved steps through their runners.
type Executor struct {
	registry *compiler.Registry
}

// NewExecutor creates a new Executor.
func NewExecutor(registry *compiler.Registry) *Executor {
	return &Executor{registry: registry}
}

// Execute runs every step of res in order. The first step that fails,
// faults or has no runner stops the run; later steps are reported as not
// run. Nothing is rolled back.
func (e *Executor) Execute(ctx compiler.RunContext, res *compiler.Resolution) Result {
	logger := ctx.Logger()
	reporter := ctx.Reporter()

	if res == nil || res.IsEmpty() {
		logger.Info(ctx.Context(), "nothing to do")
		reporter.CompletePhase("nothing to do")
		return Result{Code: ExitSuccess}
	}

	names := res.Names()
	results := make([]StepResult, 0, len(names))

	for i, name := range names {
		code, elapsed, err := e.executeStep(ctx, name, res)
		if code != ExitSuccess || err != nil {
			if err != nil {
				code = ExitFailure
			}
			results = append(results, NewStepResult(name, StatusFailed, code, err).WithDuration(elapsed))
			for _, rest := range names[i+1:] {
				results = append(results, NewStepResult(rest, StatusNotRun, 0, nil))
			}
			return Result{Code: code, Steps: results}
		}
		results = append(results, NewStepResult(name, StatusSucceeded, code, nil).WithDuration(elapsed))
	}

	return Result{Code: ExitSuccess, Steps: results}
}

func (e *Executor) executeStep(ctx compiler.RunContext, name compiler.StepName, res *compiler.Resolution) (int, time.Duration, error) {
	logger := ctx.Logger().With(ports.F("step", name.String()))
	reporter := ctx.Reporter()

	if err := ctx.Context().Err(); err != nil {
		logger.Error(ctx.Context(), "run interrupted", ports.F("error", err.Error()))
		return ExitFailure, 0, err
	}

	cfg, ok := res.Lookup(name)
	if !ok {
		err := compiler.NewRunnerNotFoundError(name, name.Directive())
		logger.Error(ctx.Context(), "step is not resolved", ports.F("error", err.Error()))
		return ExitFailure, 0, err
	}

	runner, ok := e.registry.Find(cfg.Directive())
	if !ok {
		err := compiler.NewRunnerNotFoundError(name, cfg.Directive())
		logger.Error(ctx.Context(), "no runner for step", ports.F("directive", cfg.Directive().String()))
		return ExitFailure, 0, err
	}

	reporter.StartStep(name.String())
	start := time.Now()
	code, err := invoke(runner, ctx, name, cfg)
	elapsed := time.Since(start)

	if err != nil {
		err = compiler.NewStepFailedError(name, err)
		logger.Error(ctx.Context(), "step failed",
			ports.F("error", err.Error()),
			ports.F("duration", elapsed),
		)
		return ExitFailure, elapsed, err
	}
	if code != ExitSuccess {
		logger.Error(ctx.Context(), "step exited with non-zero code",
			ports.F("code", code),
			ports.F("duration", elapsed),
		)
		return code, elapsed, nil
	}

	logger.Debug(ctx.Context(), "step completed", ports.F("duration", elapsed))
	reporter.CompleteStep(name.String())
	return ExitSuccess, elapsed, nil
}

// invoke runs a step and turns a panic into an error.
func invoke(runner compiler.Runner, ctx compiler.RunContext, name compiler.StepName, cfg compiler.StepConfig) (code int, err error) {
	defer func() {
		if r := recover(); r != nil {
			ctx.Logger().Trace(ctx.Context(), "runner panic", ports.F("stack", string(debug.Stack())))
			code = ExitFailure
			err = fmt.Errorf("runner panicked: %v", r)
		}
	}()
	return runner.Run(ctx, name, cfg)
}
