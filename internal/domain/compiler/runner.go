package compiler

// Runner validates and executes one kind of step.
type Runner interface {
	// Directive returns the primary directive. Step names use it.
	Directive() Directive

	// Aliases returns the other accepted spellings.
	Aliases() []Directive

	// CanRun reports whether directive is the primary directive or an alias.
	CanRun(directive Directive) bool

	// ParseConfig validates a raw step table and normalizes it into a
	// StepConfig named NewStepName(Directive(), order).
	ParseConfig(ctx ParseContext, raw map[string]interface{}, order int) (StepConfig, error)

	// Run executes a step and returns its exit code. A non-nil error is a
	// fault in the runner itself rather than a clean failure.
	Run(ctx RunContext, name StepName, cfg StepConfig) (int, error)
}

// BaseRunner implements the directive half of Runner. Concrete runners
// embed it.
type BaseRunner struct {
	directive Directive
	aliases   []Directive
}

// NewBaseRunner creates a BaseRunner.
func NewBaseRunner(directive Directive, aliases ...Directive) BaseRunner {
	a := make([]Directive, len(aliases))
	copy(a, aliases)
	return BaseRunner{directive: directive, aliases: a}
}

// Directive returns the primary directive.
func (b BaseRunner) Directive() Directive {
	return b.directive
}

// Aliases returns a copy of the alias list.
func (b BaseRunner) Aliases() []Directive {
	a := make([]Directive, len(b.aliases))
	copy(a, b.aliases)
	return a
}

// CanRun reports whether directive is accepted.
func (b BaseRunner) CanRun(directive Directive) bool {
	if directive == b.directive {
		return true
	}
	for _, alias := range b.aliases {
		if directive == alias {
			return true
		}
	}
	return false
}
