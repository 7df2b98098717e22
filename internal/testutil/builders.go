package testutil

// StepBuilder builds raw step tables as they come out of the TOML decoder.
type StepBuilder struct {
	raw map[string]interface{}
}

// NewStep starts a step table with the given directive.
func NewStep(directive string) *StepBuilder {
	return &StepBuilder{raw: map[string]interface{}{"directive": directive}}
}

// NewNamedStep starts a step table that uses the "name" key instead of
// "directive".
func NewNamedStep(name string) *StepBuilder {
	return &StepBuilder{raw: map[string]interface{}{"name": name}}
}

// With sets an arbitrary key.
func (b *StepBuilder) With(key string, value interface{}) *StepBuilder {
	b.raw[key] = value
	return b
}

// WithPlatform sets the platform key.
func (b *StepBuilder) WithPlatform(platform string) *StepBuilder {
	return b.With("platform", platform)
}

// WithPackages sets the packages key to a list of names.
func (b *StepBuilder) WithPackages(names ...string) *StepBuilder {
	return b.With("packages", List(names...))
}

// Build returns the step table.
func (b *StepBuilder) Build() map[string]interface{} {
	return b.raw
}

// List converts names to the []interface{} shape produced by decoders.
func List(names ...string) []interface{} {
	list := make([]interface{}, 0, len(names))
	for _, n := range names {
		list = append(list, n)
	}
	return list
}

// Table converts a string map to the map[string]interface{} shape produced
// by decoders.
func Table(values map[string]string) map[string]interface{} {
	table := make(map[string]interface{}, len(values))
	for k, v := range values {
		table[k] = v
	}
	return table
}

// Document wraps step tables into a document with an install.steps array.
func Document(steps ...map[string]interface{}) map[string]interface{} {
	list := make([]interface{}, 0, len(steps))
	for _, s := range steps {
		list = append(list, s)
	}
	return map[string]interface{}{
		"install": map[string]interface{}{
			"steps": list,
		},
	}
}
