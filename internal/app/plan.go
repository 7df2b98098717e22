package app

import (
	"strings"

	"github.com/etc-dev/etc/internal/domain/compiler"
	"github.com/etc-dev/etc/internal/provider/packages"
)

// PrintPlan outputs a human-readable listing of the resolved steps.
func (e *Etc) PrintPlan(res *compiler.Resolution) {
	title := "Install plan for " + e.opts.Platform.DisplayName()
	e.printf("\n%s\n", title)
	e.printf("%s\n\n", strings.Repeat("=", len(title)))

	if res == nil || res.IsEmpty() {
		e.printf("No steps declared.\n")
	} else {
		e.printf("Steps: %d\n\n", res.Len())
		for i, cfg := range res.Steps() {
			e.printStep(i+1, cfg)
		}
	}

	if res != nil && len(res.Unclaimed()) > 0 {
		e.printf("\nIgnored entries (no runner):\n")
		for _, u := range res.Unclaimed() {
			e.printf("  ? %s\n", u.String())
		}
	}

	if e.opts.DryRun {
		e.printf("\nDry run: commands are printed, not executed.\n")
	}
	e.printf("\n")
}

func (e *Etc) printStep(n int, cfg compiler.StepConfig) {
	header := cfg.Name().String()
	if cfg.Directive() != cfg.Name().Directive() {
		header += " (" + cfg.Directive().String() + ")"
	}

	pkgCfg, ok := cfg.(packages.Config)
	if !ok {
		e.printf("  %d. %s\n", n, header)
		return
	}

	target, restricted := pkgCfg.Platform()
	if restricted {
		header += ", " + target.DisplayName() + " only"
		if target != e.opts.Platform {
			header += ", skipped"
		}
	}
	e.printf("  %d. %s\n", n, header)

	if pkgCfg.Packages().Len() > 0 {
		e.printf("       packages: %s\n", pkgCfg.Packages().String())
	}
	if pkgCfg.Casks().Len() > 0 {
		e.printf("       casks:    %s\n", pkgCfg.Casks().String())
	}
}
