package ports

import (
	"os"
	"path/filepath"
	"strings"
)

// FileSystem provides the file system operations the bootstrapper needs.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	Exists(path string) bool
}

// ExpandPath expands a leading ~ to the user's home directory and
// environment variables anywhere in the path.
func ExpandPath(path string) string {
	path = os.ExpandEnv(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
