package packages

import (
	"fmt"

	"github.com/etc-dev/etc/internal/domain/compiler"
	"github.com/etc-dev/etc/internal/domain/platform"
)

// darwinOnlyKeys are legal only on steps with platform = "darwin".
var darwinOnlyKeys = []string{KeyFormulae, KeyCasks}

// parseConfig validates raw and builds the step configuration.
//
// The primary channel merges, in increasing precedence: packages,
// formulae, platforms.all and platforms.<effective platform>, where the
// effective platform is the step's platform or else the current one. The
// cask channel merges casks and then platforms.darwin.casks, and exists
// only when the effective platform is darwin.
func (r *Runner) parseConfig(ctx compiler.ParseContext, raw map[string]interface{}, order int) (Config, error) {
	directive, err := directiveOf(raw)
	if err != nil {
		return nil, err
	}

	target, err := r.parsePlatform(raw)
	if err != nil {
		return nil, err
	}

	isDarwinStep := target != nil && *target == platform.Darwin
	for _, key := range darwinOnlyKeys {
		if _, ok := raw[key]; ok && !isDarwinStep {
			return nil, fmt.Errorf("%w: %q is only valid with %s = %q", ErrInvalidConfig, key, KeyPlatform, platform.Darwin)
		}
	}
	if _, hasPackages := raw[KeyPackages]; hasPackages {
		if _, hasFormulae := raw[KeyFormulae]; hasFormulae {
			return nil, fmt.Errorf("%w: use either %q or %q, not both", ErrInvalidConfig, KeyPackages, KeyFormulae)
		}
	}

	effective := ctx.Platform()
	if target != nil {
		effective = *target
	}

	var pkgs, casks Packages
	found := false

	merge := func(dst *Packages, key string, decl interface{}) error {
		p, err := Normalize(decl)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = dst.Merge(p)
		found = true
		return nil
	}

	for _, key := range []string{KeyPackages, KeyFormulae} {
		if decl, ok := raw[key]; ok {
			if err := merge(&pkgs, key, decl); err != nil {
				return nil, err
			}
		}
	}

	if decl, ok := raw[KeyCasks]; ok && effective == platform.Darwin {
		if err := merge(&casks, KeyCasks, decl); err != nil {
			return nil, err
		}
	}

	platforms, err := parsePlatformsTable(raw, target)
	if err != nil {
		return nil, err
	}

	if decl, ok := platforms[PlatformAll]; ok {
		if err := merge(&pkgs, KeyPlatforms+"."+PlatformAll, decl); err != nil {
			return nil, err
		}
	}

	// Entries for other platforms are validated too, so one file resolves
	// the same way on every machine.
	for _, id := range platform.Known() {
		decl, ok := platforms[id.String()]
		if !ok {
			continue
		}
		p, c, err := platformEntry(id, decl)
		if err != nil {
			return nil, err
		}
		found = true
		if id == effective {
			pkgs = pkgs.Merge(p)
			casks = casks.Merge(c)
		}
	}

	if !found {
		return nil, fmt.Errorf("%w: no valid packages configuration (expected %q, %q, %q or %q)",
			ErrInvalidConfig, KeyPackages, KeyFormulae, KeyCasks, KeyPlatforms)
	}

	name := compiler.NewStepName(r.Directive(), order)
	if effective == platform.Darwin {
		return NewDarwinPackagesConfig(directive, name, pkgs, casks, target), nil
	}
	return NewSystemPackagesConfig(directive, name, pkgs, target), nil
}

// platformEntry normalizes platforms.<id>. Only a darwin channel table
// yields casks.
func platformEntry(id platform.ID, decl interface{}) (Packages, Packages, error) {
	prefix := KeyPlatforms + "." + id.String()

	channels, isChannels := channelTable(id, decl)
	if !isChannels {
		p, err := Normalize(decl)
		if err != nil {
			return Packages{}, Packages{}, fmt.Errorf("%s: %w", prefix, err)
		}
		return p, Packages{}, nil
	}

	for key := range channels {
		if key != KeyPackages && key != KeyFormulae && key != KeyCasks {
			return Packages{}, Packages{}, fmt.Errorf("%w: unknown key %q in %s", ErrInvalidConfig, key, prefix)
		}
	}
	var pkgs, casks Packages
	for _, key := range []string{KeyPackages, KeyFormulae, KeyCasks} {
		d, ok := channels[key]
		if !ok {
			continue
		}
		p, err := Normalize(d)
		if err != nil {
			return Packages{}, Packages{}, fmt.Errorf("%s.%s: %w", prefix, key, err)
		}
		if key == KeyCasks {
			casks = casks.Merge(p)
		} else {
			pkgs = pkgs.Merge(p)
		}
	}
	return pkgs, casks, nil
}

// directiveOf returns the spelling the entry used.
func directiveOf(raw map[string]interface{}) (compiler.Directive, error) {
	for _, key := range []string{compiler.DirectiveKey, compiler.NameKey} {
		if v, ok := raw[key]; ok {
			s, ok := v.(string)
			if !ok {
				return "", fmt.Errorf("%w: %q must be a string, got %s", ErrConfigType, key, compiler.TypeName(v))
			}
			return compiler.Directive(s), nil
		}
	}
	return Directive, nil
}

// parsePlatform reads the optional platform key. The platform must be known
// and have a package manager.
func (r *Runner) parsePlatform(raw map[string]interface{}) (*platform.ID, error) {
	v, ok := raw[KeyPlatform]
	if !ok {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("%w: %q must be a string, got %s", ErrConfigType, KeyPlatform, compiler.TypeName(v))
	}
	id, err := platform.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, KeyPlatform, err)
	}
	if _, ok := r.managers[id]; !ok {
		return nil, fmt.Errorf("%w: %s: no package manager for platform %q", ErrInvalidConfig, KeyPlatform, id)
	}
	return &id, nil
}

// parsePlatformsTable reads the optional platforms table. Keys must be
// "all" or a known platform; a step restricted to one platform may only
// use "all" and its own platform.
func parsePlatformsTable(raw map[string]interface{}, target *platform.ID) (map[string]interface{}, error) {
	v, ok := raw[KeyPlatforms]
	if !ok {
		return nil, nil
	}
	table, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: %q must be a table, got %s", ErrConfigType, KeyPlatforms, compiler.TypeName(v))
	}

	for key := range table {
		if key == PlatformAll {
			continue
		}
		id, err := platform.Parse(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, KeyPlatforms, err)
		}
		if target != nil && id != *target {
			return nil, fmt.Errorf("%w: %s.%s conflicts with %s = %q", ErrInvalidConfig, KeyPlatforms, id, KeyPlatform, *target)
		}
	}
	return table, nil
}

// channelTable reports whether decl, found under platforms.<id>, splits
// packages by channel rather than declaring packages directly. Only darwin
// has channels; a table is a channel table when its formulae or casks
// entry is not a version string.
func channelTable(id platform.ID, decl interface{}) (map[string]interface{}, bool) {
	if id != platform.Darwin {
		return nil, false
	}
	table, ok := decl.(map[string]interface{})
	if !ok {
		return nil, false
	}
	for _, key := range darwinOnlyKeys {
		if v, ok := table[key]; ok {
			if _, isVersion := v.(string); !isVersion {
				return table, true
			}
		}
	}
	return nil, false
}
