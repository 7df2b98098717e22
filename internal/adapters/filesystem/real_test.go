package filesystem

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewRealFileSystem(t *testing.T) {
	fs := NewRealFileSystem()
	if fs == nil {
		t.Error("NewRealFileSystem() should not return nil")
	}
}

func TestRealFileSystem_Integration(t *testing.T) {
	fs := NewRealFileSystem()
	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "etc.toml")
	if err := os.WriteFile(testFile, []byte("[install]\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	content, err := fs.ReadFile(testFile)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(content) != "[install]\n" {
		t.Errorf("ReadFile() = %q, want %q", string(content), "[install]\n")
	}

	if !fs.Exists(testFile) {
		t.Error("Exists() should return true for existing file")
	}
	if !fs.Exists(tmpDir) {
		t.Error("Exists() should return true for a directory")
	}

	missing := filepath.Join(tmpDir, "missing")
	if fs.Exists(missing) {
		t.Error("Exists() should return false for non-existent path")
	}
	if _, err := fs.ReadFile(missing); !os.IsNotExist(err) {
		t.Errorf("ReadFile() error = %v, want not-exist", err)
	}
}
