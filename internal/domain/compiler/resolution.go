package compiler

import "fmt"

// Unclaimed is a step entry that no runner accepted.
type Unclaimed struct {
	Index     int
	Directive Directive
	Raw       map[string]interface{}
}

// String describes the entry for diagnostics.
func (u Unclaimed) String() string {
	return fmt.Sprintf("%s (directive %q)", entryPath(u.Index), u.Directive)
}

// Resolution is the ordered result of resolving a configuration document.
type Resolution struct {
	names     []StepName
	steps     map[StepName]StepConfig
	unclaimed []Unclaimed
}

func newResolution() *Resolution {
	return &Resolution{
		names: make([]StepName, 0),
		steps: make(map[StepName]StepConfig),
	}
}

// NewResolution builds a Resolution from configs in order. Names must be
// unique.
func NewResolution(configs ...StepConfig) (*Resolution, error) {
	r := newResolution()
	for _, cfg := range configs {
		if err := r.add(cfg); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Resolution) add(cfg StepConfig) error {
	name := cfg.Name()
	if _, exists := r.steps[name]; exists {
		return NewStepDuplicateError(name)
	}
	r.steps[name] = cfg
	r.names = append(r.names, name)
	return nil
}

// Names returns the step names in execution order.
func (r *Resolution) Names() []StepName {
	result := make([]StepName, len(r.names))
	copy(result, r.names)
	return result
}

// Lookup returns the config resolved under name.
func (r *Resolution) Lookup(name StepName) (StepConfig, bool) {
	cfg, ok := r.steps[name]
	return cfg, ok
}

// Steps returns the configs in execution order.
func (r *Resolution) Steps() []StepConfig {
	result := make([]StepConfig, 0, len(r.names))
	for _, name := range r.names {
		result = append(result, r.steps[name])
	}
	return result
}

// Len returns the number of resolved steps.
func (r *Resolution) Len() int {
	return len(r.names)
}

// IsEmpty reports whether nothing resolved.
func (r *Resolution) IsEmpty() bool {
	return len(r.names) == 0
}

// Unclaimed returns the entries no runner accepted, in document order.
func (r *Resolution) Unclaimed() []Unclaimed {
	result := make([]Unclaimed, len(r.unclaimed))
	copy(result, r.unclaimed)
	return result
}
