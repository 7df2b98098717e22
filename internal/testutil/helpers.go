// Package testutil provides test helpers and utilities for etc tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteTempFile writes content to a file in the specified directory.
func WriteTempFile(t *testing.T, dir, filename, content string) string {
	t.Helper()

	path := filepath.Join(dir, filename)
	err := os.MkdirAll(filepath.Dir(path), 0o755)
	require.NoError(t, err, "failed to create parent directory for: %s", filename)

	err = os.WriteFile(path, []byte(content), 0o644)
	require.NoError(t, err, "failed to write temp file: %s", filename)

	return path
}

// WriteConfig writes an etc.toml with the given content into a fresh
// temporary base directory and returns the directory and the file path.
func WriteConfig(t *testing.T, content string) (string, string) {
	t.Helper()

	dir := t.TempDir()
	return dir, WriteTempFile(t, dir, "etc.toml", content)
}
