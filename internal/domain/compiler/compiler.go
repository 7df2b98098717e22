// Package compiler turns a configuration document into an ordered set of
// validated steps, each owned by a runner.
package compiler

import (
	"fmt"

	"github.com/etc-dev/etc/internal/ports"
)

// Document keys read by the resolver.
const (
	SectionKey   = "install"
	StepsKey     = "steps"
	DirectiveKey = "directive"
	NameKey      = "name"
)

// Compiler resolves configuration documents against a fixed Registry.
type Compiler struct {
	registry *Registry
}

// NewCompiler creates a new Compiler.
func NewCompiler(registry *Registry) *Compiler {
	return &Compiler{registry: registry}
}

// Resolve validates every step entry under install.steps and returns them
// in document order. Structural and validation errors abort resolution
// with no partial result. Entries no runner accepts are skipped and
// reported in a single warning.
func (c *Compiler) Resolve(ctx ParseContext, doc map[string]interface{}) (*Resolution, error) {
	logger := ctx.Logger()
	res := newResolution()

	entries, found, err := stepEntries(doc)
	if err != nil {
		return nil, err
	}
	if !found {
		logger.Warn(ctx.Context(), "no steps declared", ports.F("path", SectionKey+"."+StepsKey))
		return res, nil
	}

	consumed := make([]bool, len(entries))
	order := 0

	for i, entry := range entries {
		directive, err := directiveOf(i, entry)
		if err != nil {
			return nil, err
		}

		runner, ok := c.registry.Find(directive)
		if !ok {
			logger.Debug(ctx.Context(), "no runner for directive",
				ports.F("entry", entryPath(i)),
				ports.F("directive", directive.String()),
			)
			continue
		}

		name := NewStepName(runner.Directive(), order)
		logger.Trace(ctx.Context(), "parsing step",
			ports.F("step", name.String()),
			ports.F("raw", entry),
		)

		cfg, err := runner.ParseConfig(ctx, entry, order)
		if err != nil {
			return nil, NewStepInvalidError(directive, name, err)
		}
		if cfg == nil || cfg.Name() != name {
			return nil, NewStepInvalidError(directive, name,
				fmt.Errorf("runner returned a config not named %s", name))
		}
		if err := res.add(cfg); err != nil {
			return nil, err
		}

		consumed[i] = true
		order++
	}

	for i, entry := range entries {
		if consumed[i] {
			continue
		}
		directive, _ := directiveOf(i, entry)
		res.unclaimed = append(res.unclaimed, Unclaimed{Index: i, Directive: directive, Raw: entry})
	}

	if len(res.unclaimed) > 0 {
		described := make([]string, 0, len(res.unclaimed))
		for _, u := range res.unclaimed {
			described = append(described, u.String())
		}
		logger.Warn(ctx.Context(), fmt.Sprintf("%d step entries were not claimed by any runner", len(res.unclaimed)),
			ports.F("entries", described),
			ports.F("known", c.registry.Directives()),
		)
	}

	return res, nil
}

// stepEntries locates install.steps. found is false when either key is
// absent. Every element must be a table.
func stepEntries(doc map[string]interface{}) ([]map[string]interface{}, bool, error) {
	rawSection, ok := doc[SectionKey]
	if !ok {
		return nil, false, nil
	}
	section, ok := rawSection.(map[string]interface{})
	if !ok {
		return nil, false, NewStructureError(SectionKey,
			fmt.Sprintf("%q must be a table, got %s", SectionKey, TypeName(rawSection)))
	}

	rawSteps, ok := section[StepsKey]
	if !ok {
		return nil, false, nil
	}
	list, ok := rawSteps.([]interface{})
	if !ok {
		return nil, false, NewStructureError(SectionKey+"."+StepsKey,
			fmt.Sprintf("%q must be an array, got %s", StepsKey, TypeName(rawSteps)))
	}

	entries := make([]map[string]interface{}, 0, len(list))
	for i, item := range list {
		table, ok := item.(map[string]interface{})
		if !ok {
			return nil, false, NewStructureError(entryPath(i),
				fmt.Sprintf("step entry must be a table, got %s", TypeName(item)))
		}
		entries = append(entries, table)
	}

	return entries, true, nil
}

// directiveOf reads the directive key, falling back to name.
func directiveOf(index int, entry map[string]interface{}) (Directive, error) {
	raw, ok := entry[DirectiveKey]
	key := DirectiveKey
	if !ok {
		raw, ok = entry[NameKey]
		key = NameKey
	}
	if !ok {
		return "", NewMissingDirectiveError(index)
	}

	s, ok := raw.(string)
	if !ok {
		return "", NewStructureError(entryPath(index),
			fmt.Sprintf("%q must be a string, got %s", key, TypeName(raw)))
	}
	return Directive(s), nil
}

// TypeName describes the decoded type of v for error messages.
func TypeName(v interface{}) string {
	switch v.(type) {
	case nil:
		return "nothing"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case int, int64, uint64, float64:
		return "a number"
	case []interface{}:
		return "an array"
	case map[string]interface{}:
		return "a table"
	default:
		return fmt.Sprintf("%T", v)
	}
}
