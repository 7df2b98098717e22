package compiler

// Registry is the fixed, ordered set of runners available to a run. It is
// built once and never modified.
type Registry struct {
	runners []Runner
}

// NewRegistry creates a Registry. Registration order decides which runner
// claims a directive that several runners accept.
func NewRegistry(runners ...Runner) *Registry {
	r := make([]Runner, 0, len(runners))
	for _, runner := range runners {
		if runner != nil {
			r = append(r, runner)
		}
	}
	return &Registry{runners: r}
}

// Find returns the first registered runner that can run directive.
func (r *Registry) Find(directive Directive) (Runner, bool) {
	for _, runner := range r.runners {
		if runner.CanRun(directive) {
			return runner, true
		}
	}
	return nil, false
}

// Directives returns every accepted spelling in registration order.
func (r *Registry) Directives() []Directive {
	var result []Directive
	for _, runner := range r.runners {
		result = append(result, runner.Directive())
		result = append(result, runner.Aliases()...)
	}
	return result
}
