package config

import (
	"path/filepath"

	"github.com/etc-dev/etc/internal/domain/platform"
	"github.com/etc-dev/etc/internal/ports"
)

// Options are the settings of one invocation.
type Options struct {
	// Platform is the platform steps are evaluated against.
	Platform platform.ID
	// BaseDirectory holds the configuration repository.
	BaseDirectory string
	// ConfigFile is absolute, or relative to BaseDirectory.
	ConfigFile string
	// EnvFile is absolute, or relative to BaseDirectory. Empty disables it.
	EnvFile string
	// Remote is the repository URL cloned by bootstrap.
	Remote string

	DryRun        bool
	PrintCommands bool
	Verbosity     int
	Colors        bool
	LogFormat     string
}

// DefaultOptions returns the defaults for id with home as the user's home
// directory.
func DefaultOptions(id platform.ID, home string) (Options, error) {
	base, err := platform.DefaultBaseDirectory(id, home)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Platform:      id,
		BaseDirectory: base,
		ConfigFile:    platform.ConfigFileName,
		EnvFile:       platform.EnvFileName,
		LogFormat:     "text",
	}, nil
}

// Normalize expands ~ and environment variables in paths and applies
// implied flags. The receiver is not modified.
func (o Options) Normalize() Options {
	n := o
	n.BaseDirectory = filepath.Clean(ports.ExpandPath(o.BaseDirectory))
	if o.ConfigFile != "" {
		n.ConfigFile = ports.ExpandPath(o.ConfigFile)
	}
	if o.EnvFile != "" {
		n.EnvFile = ports.ExpandPath(o.EnvFile)
	}
	if n.DryRun {
		n.PrintCommands = true
	}
	if n.Verbosity < 0 {
		n.Verbosity = 0
	}
	return n
}

// ConfigPath returns the configuration file path.
func (o Options) ConfigPath() string {
	return o.resolve(o.ConfigFile)
}

// EnvFilePath returns the environment file path, or "" when disabled.
func (o Options) EnvFilePath() string {
	if o.EnvFile == "" {
		return ""
	}
	return o.resolve(o.EnvFile)
}

// LogLevel maps the verbosity count to a log level.
func (o Options) LogLevel() ports.Level {
	return ports.LevelFromVerbosity(o.Verbosity)
}

func (o Options) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(o.BaseDirectory, path)
}
