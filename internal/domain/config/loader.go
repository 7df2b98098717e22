package config

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/etc-dev/etc/internal/ports"
)

// Document is a decoded configuration file: nested maps, sequences and
// scalars with no schema applied.
type Document map[string]interface{}

// Loader reads configuration documents.
type Loader struct {
	fs ports.FileSystem
}

// NewLoader creates a new Loader.
func NewLoader(fs ports.FileSystem) *Loader {
	return &Loader{fs: fs}
}

// Load reads and decodes the configuration file at path.
func (l *Loader) Load(path string) (Document, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewConfigNotFoundError(path, err)
		}
		return nil, NewConfigReadError(path, err)
	}
	return Decode(path, data)
}

// Decode decodes data by the extension of path. .yaml and .yml are YAML,
// everything else is TOML.
//
// Decoding goes through a plain map: yaml.v3 reuses the target's map type
// for nested mappings, and the resolver expects map[string]interface{}
// at every level.
func Decode(path string, data []byte) (Document, error) {
	doc := map[string]interface{}{}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, NewYAMLParseError(path, err)
		}
		if doc == nil {
			doc = map[string]interface{}{}
		}
	default:
		if err := toml.Unmarshal(data, &doc); err != nil {
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				line, column := derr.Position()
				return nil, NewTOMLParseError(path, line, column, err)
			}
			return nil, NewTOMLParseError(path, 0, 0, err)
		}
	}

	return Document(doc), nil
}
