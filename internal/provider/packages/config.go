package packages

import (
	"errors"
	"fmt"

	"github.com/etc-dev/etc/internal/domain/compiler"
	"github.com/etc-dev/etc/internal/domain/platform"
)

// Directives handled by the runner.
const (
	Directive      compiler.Directive = "system-packages"
	DirectiveAlias compiler.Directive = "packages"
)

// Step table keys.
const (
	KeyPlatform  = "platform"
	KeyPackages  = "packages"
	KeyFormulae  = "formulae"
	KeyCasks     = "casks"
	KeyPlatforms = "platforms"

	// PlatformAll is the platforms table entry that applies everywhere.
	PlatformAll = "all"
)

// ErrInvalidConfig is wrapped by every validation error of a packages step.
var ErrInvalidConfig = errors.New("invalid packages configuration")

// ErrConfigType is wrapped by validation errors caused by a value of the
// wrong type. It also matches ErrInvalidConfig.
var ErrConfigType = fmt.Errorf("%w: wrong type", ErrInvalidConfig)

// SystemPackagesConfig is a validated packages step.
type SystemPackagesConfig struct {
	directive compiler.Directive
	name      compiler.StepName
	packages  Packages
	platform  *platform.ID
}

// NewSystemPackagesConfig creates a SystemPackagesConfig. A nil target
// applies to every platform.
func NewSystemPackagesConfig(directive compiler.Directive, name compiler.StepName, pkgs Packages, target *platform.ID) *SystemPackagesConfig {
	var p *platform.ID
	if target != nil {
		id := *target
		p = &id
	}
	return &SystemPackagesConfig{
		directive: directive,
		name:      name,
		packages:  pkgs.clone(),
		platform:  p,
	}
}

// Directive returns the directive spelling that matched.
func (c *SystemPackagesConfig) Directive() compiler.Directive {
	return c.directive
}

// Name returns the step name.
func (c *SystemPackagesConfig) Name() compiler.StepName {
	return c.name
}

// Packages returns the packages of the primary channel.
func (c *SystemPackagesConfig) Packages() Packages {
	return c.packages.clone()
}

// Platform returns the platform the step is restricted to, if any.
func (c *SystemPackagesConfig) Platform() (platform.ID, bool) {
	if c.platform == nil {
		return "", false
	}
	return *c.platform, true
}

// Casks returns the cask channel. It is empty outside darwin.
func (c *SystemPackagesConfig) Casks() Packages {
	return Packages{}
}

// DarwinPackagesConfig is a packages step evaluated for darwin. It adds
// the cask channel.
type DarwinPackagesConfig struct {
	SystemPackagesConfig
	casks Packages
}

// NewDarwinPackagesConfig creates a DarwinPackagesConfig.
func NewDarwinPackagesConfig(directive compiler.Directive, name compiler.StepName, pkgs, casks Packages, target *platform.ID) *DarwinPackagesConfig {
	return &DarwinPackagesConfig{
		SystemPackagesConfig: *NewSystemPackagesConfig(directive, name, pkgs, target),
		casks:                casks.clone(),
	}
}

// Casks returns the cask channel.
func (c *DarwinPackagesConfig) Casks() Packages {
	return c.casks.clone()
}

// Config is implemented by both packages step configurations.
type Config interface {
	compiler.StepConfig
	Packages() Packages
	Casks() Packages
	Platform() (platform.ID, bool)
}

var (
	_ Config = (*SystemPackagesConfig)(nil)
	_ Config = (*DarwinPackagesConfig)(nil)
)
