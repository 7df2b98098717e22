package platform

import (
	"fmt"
	"path/filepath"
)

const (
	// ConfigFileName is the configuration file looked up in the base directory.
	ConfigFileName = "etc.toml"
	// EnvFileName is the optional environment file in the base directory.
	EnvFileName = "etc.env"
)

// DefaultBaseDirectory returns where the configuration repository lives
// on id, relative to home.
func DefaultBaseDirectory(id ID, home string) (string, error) {
	switch id {
	case Darwin:
		return filepath.Join(home, "Preferences"), nil
	case Linux:
		return filepath.Join(home, "etc"), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, id)
	}
}
