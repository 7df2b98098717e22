// Package platform identifies the machine a run targets.
package platform

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ID identifies a supported target platform. Values match runtime.GOOS.
type ID string

const (
	// Darwin is macOS.
	Darwin ID = "darwin"
	// Linux is Linux (native, WSL or container).
	Linux ID = "linux"
)

// ErrUnknownPlatform is returned for platform names outside Known().
var ErrUnknownPlatform = errors.New("unknown platform")

// ErrUnsupported is returned when the running OS is not a supported platform.
var ErrUnsupported = errors.New("unsupported platform")

// Known returns every supported platform in a stable order.
func Known() []ID {
	return []ID{Darwin, Linux}
}

// Parse converts a configuration value into an ID. Matching is exact.
func Parse(s string) (ID, error) {
	id := ID(s)
	if !id.IsKnown() {
		return "", fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownPlatform, s, knownList())
	}
	return id, nil
}

// FromGOOS maps a runtime.GOOS value to an ID.
func FromGOOS(goos string) (ID, error) {
	id := ID(goos)
	if !id.IsKnown() {
		return "", fmt.Errorf("%w: %s", ErrUnsupported, goos)
	}
	return id, nil
}

// Current returns the platform of the running process.
func Current() (ID, error) {
	return FromGOOS(runtime.GOOS)
}

// IsKnown reports whether id is a supported platform.
func (id ID) IsKnown() bool {
	for _, k := range Known() {
		if id == k {
			return true
		}
	}
	return false
}

// String returns the configuration spelling.
func (id ID) String() string {
	return string(id)
}

// DisplayName returns a title-cased name for output.
func (id ID) DisplayName() string {
	return cases.Title(language.English).String(string(id))
}

func knownList() string {
	names := make([]string, 0, len(Known()))
	for _, k := range Known() {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}

// Environment describes where a Linux platform runs.
type Environment string

const (
	// EnvNative is a native OS environment.
	EnvNative Environment = "native"
	// EnvWSL is Windows Subsystem for Linux.
	EnvWSL Environment = "wsl"
	// EnvDocker is running inside a container.
	EnvDocker Environment = "docker"
)

// Platform is the detected platform of the running machine.
type Platform struct {
	id          ID
	arch        string
	environment Environment
}

// New creates a Platform with specified values.
func New(id ID, arch string, env Environment) *Platform {
	return &Platform{id: id, arch: arch, environment: env}
}

// Detect inspects the running machine.
func Detect() (*Platform, error) {
	id, err := Current()
	if err != nil {
		return nil, err
	}

	p := &Platform{id: id, arch: runtime.GOARCH, environment: EnvNative}
	if id == Linux {
		p.environment = detectLinuxEnvironment()
	}
	return p, nil
}

func detectLinuxEnvironment() Environment {
	if data, err := os.ReadFile("/proc/version"); err == nil {
		version := strings.ToLower(string(data))
		if strings.Contains(version, "microsoft") || strings.Contains(version, "wsl") {
			return EnvWSL
		}
	}

	if _, err := os.Stat("/.dockerenv"); err == nil {
		return EnvDocker
	}
	if data, err := os.ReadFile("/proc/1/cgroup"); err == nil {
		cgroup := string(data)
		if strings.Contains(cgroup, "docker") || strings.Contains(cgroup, "containerd") {
			return EnvDocker
		}
	}

	return EnvNative
}

// ID returns the platform identifier.
func (p *Platform) ID() ID {
	return p.id
}

// Arch returns the architecture.
func (p *Platform) Arch() string {
	return p.arch
}

// Environment returns the execution environment.
func (p *Platform) Environment() Environment {
	return p.environment
}

// String returns a description such as "linux/amd64/wsl".
func (p *Platform) String() string {
	parts := []string{string(p.id), p.arch}
	if p.environment != EnvNative && p.environment != "" {
		parts = append(parts, string(p.environment))
	}
	return strings.Join(parts, "/")
}
