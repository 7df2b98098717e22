package compiler

// Directive identifies a step kind in the configuration. Matching is exact
// and case-sensitive.
type Directive string

// String returns the directive spelling.
func (d Directive) String() string {
	return string(d)
}

// StepConfig is the validated configuration of one step. Implementations
// are immutable after ParseConfig returns them.
type StepConfig interface {
	// Directive returns the spelling that matched the owning runner: its
	// primary directive or one of its aliases.
	Directive() Directive

	// Name returns the step's unique name.
	Name() StepName
}
