package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"

	"github.com/etc-dev/etc/internal/ports"
)

// LoadEnvFile reads KEY=VALUE pairs for package-manager subprocesses.
// A missing file yields an empty map.
func LoadEnvFile(fsys ports.FileSystem, path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, NewEnvFileError(path, err)
	}

	env, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return nil, NewEnvFileError(path, err)
	}
	return env, nil
}
