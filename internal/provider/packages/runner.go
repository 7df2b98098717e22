package packages

import (
	"fmt"
	"strings"

	"github.com/etc-dev/etc/internal/domain/compiler"
	"github.com/etc-dev/etc/internal/domain/platform"
	"github.com/etc-dev/etc/internal/ports"
)

// ExitFailure is returned with a non-nil error.
const ExitFailure = 1

// Runner validates and runs system-packages steps.
type Runner struct {
	compiler.BaseRunner
	managers map[platform.ID]Manager
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithManager sets the package manager used on id.
func WithManager(id platform.ID, manager Manager) RunnerOption {
	return func(r *Runner) {
		r.managers[id] = manager
	}
}

// NewRunner creates a Runner for the "system-packages" directive and its
// "packages" alias.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		BaseRunner: compiler.NewBaseRunner(Directive, DirectiveAlias),
		managers:   make(map[platform.ID]Manager),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Manager returns the package manager used on id.
func (r *Runner) Manager(id platform.ID) (Manager, bool) {
	m, ok := r.managers[id]
	return m, ok
}

// ParseConfig validates a raw step table. Errors wrap ErrInvalidConfig.
func (r *Runner) ParseConfig(ctx compiler.ParseContext, raw map[string]interface{}, order int) (compiler.StepConfig, error) {
	cfg, err := r.parseConfig(ctx, raw, order)
	if err != nil {
		return nil, err
	}
	ctx.Logger().Trace(ctx.Context(), "resolved packages step",
		ports.F("step", cfg.Name().String()),
		ports.F("packages", cfg.Packages().String()),
		ports.F("casks", cfg.Casks().String()),
	)
	return cfg, nil
}

// Run installs every declared package that is not installed yet. A step
// restricted to another platform is skipped.
func (r *Runner) Run(ctx compiler.RunContext, name compiler.StepName, stepCfg compiler.StepConfig) (int, error) {
	cfg, ok := stepCfg.(Config)
	if !ok {
		return ExitFailure, fmt.Errorf("%s: unexpected config type %T", name, stepCfg)
	}
	logger := ctx.Logger().With(ports.F("step", name.String()))

	if target, ok := cfg.Platform(); ok && target != ctx.Platform() {
		logger.Debug(ctx.Context(), "skipping step for another platform",
			ports.F("platform", target.String()),
			ports.F("current", ctx.Platform().String()),
		)
		return 0, nil
	}

	manager, ok := r.managers[ctx.Platform()]
	if !ok {
		return ExitFailure, fmt.Errorf("no package manager for platform %q", ctx.Platform())
	}

	if code, err := r.install(ctx, logger, manager, ChannelFormula, cfg.Packages()); code != 0 || err != nil {
		return code, err
	}
	return r.install(ctx, logger, manager, ChannelCask, cfg.Casks())
}

// install installs the missing packages of one channel, in order. It stops
// at the first install that fails.
func (r *Runner) install(ctx compiler.RunContext, logger ports.Logger, manager Manager, channel Channel, pkgs Packages) (int, error) {
	if pkgs.Len() == 0 {
		return 0, nil
	}

	names, err := manager.ListInstalled(ctx.Context(), ctx.Shell(), channel)
	if err != nil {
		return ExitFailure, err
	}
	installed := make(map[string]bool, len(names))
	for _, n := range names {
		installed[n] = true
	}

	reporter := ctx.Reporter()
	for _, pkg := range pkgs.Entries() {
		if installed[pkg.BareName()] {
			logger.Debug(ctx.Context(), "already installed",
				ports.F("package", pkg.Name),
				ports.F("channel", string(channel)),
			)
			continue
		}

		reporter.StartTask(fmt.Sprintf("installing %s %s", channel, pkg.Spec()))
		result, err := manager.Install(ctx.Context(), ctx.Shell(), channel, pkg.Name, pkg.Version)
		if err != nil {
			return ExitFailure, err
		}
		if !result.Success() {
			fields := []ports.Field{
				ports.F("package", pkg.Spec()),
				ports.F("manager", manager.Name()),
				ports.F("code", result.ExitCode),
			}
			if stderr := strings.TrimSpace(result.Stderr); stderr != "" {
				fields = append(fields, ports.F("stderr", stderr))
			}
			logger.Error(ctx.Context(), "install failed", fields...)
			return result.ExitCode, nil
		}

		if ctx.DryRun() {
			reporter.CompleteTask(fmt.Sprintf("would install %s", pkg.Spec()))
		} else {
			reporter.CompleteTask(fmt.Sprintf("installed %s", pkg.Spec()))
		}
	}

	return 0, nil
}

// Ensure Runner implements compiler.Runner.
var _ compiler.Runner = (*Runner)(nil)
