package config

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etc-dev/etc/internal/testutil/mocks"
)

func TestLoader_Load_TOML(t *testing.T) {
	fsys := mocks.NewFileSystem()
	fsys.AddFile("/base/etc.toml", `
[[install.steps]]
directive = "system-packages"
packages = ["jq", "ripgrep"]

[[install.steps]]
name = "packages"
platform = "darwin"
casks = { firefox = "" }
`)

	doc, err := NewLoader(fsys).Load("/base/etc.toml")
	require.NoError(t, err)

	install, ok := doc["install"].(map[string]interface{})
	require.True(t, ok, "install should decode to a table")
	steps, ok := install["steps"].([]interface{})
	require.True(t, ok, "steps should decode to an array")
	require.Len(t, steps, 2)

	first, ok := steps[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "system-packages", first["directive"])
	assert.Equal(t, []interface{}{"jq", "ripgrep"}, first["packages"])

	second, ok := steps[1].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, map[string]interface{}{"firefox": ""}, second["casks"])
}

func TestLoader_Load_YAML(t *testing.T) {
	fsys := mocks.NewFileSystem()
	fsys.AddFile("/base/etc.yaml", `
install:
  steps:
    - directive: packages
      packages:
        jq: "1.7"
`)

	doc, err := NewLoader(fsys).Load("/base/etc.yaml")
	require.NoError(t, err)

	install, ok := doc["install"].(map[string]interface{})
	require.True(t, ok)
	steps, ok := install["steps"].([]interface{})
	require.True(t, ok)
	require.Len(t, steps, 1)
	step, ok := steps[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, map[string]interface{}{"jq": "1.7"}, step["packages"])
}

func TestLoader_Load_EmptyDocument(t *testing.T) {
	fsys := mocks.NewFileSystem()
	fsys.AddFile("/base/etc.toml", "")
	fsys.AddFile("/base/etc.yml", "")

	doc, err := NewLoader(fsys).Load("/base/etc.toml")
	require.NoError(t, err)
	assert.Empty(t, doc)

	doc, err = NewLoader(fsys).Load("/base/etc.yml")
	require.NoError(t, err)
	assert.NotNil(t, doc)
	assert.Empty(t, doc)
}

func TestLoader_Load_NotFound(t *testing.T) {
	_, err := NewLoader(mocks.NewFileSystem()).Load("/missing/etc.toml")

	require.Error(t, err)
	assert.True(t, IsUserError(err, ErrCodeConfigNotFound))
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "/missing/etc.toml")
}

type failingFS struct {
	*mocks.FileSystem
}

func (failingFS) ReadFile(string) ([]byte, error) {
	return nil, fs.ErrPermission
}

func TestLoader_Load_ReadError(t *testing.T) {
	_, err := NewLoader(failingFS{mocks.NewFileSystem()}).Load("/base/etc.toml")

	require.Error(t, err)
	assert.True(t, IsUserError(err, ErrCodeConfigRead))
	assert.True(t, errors.Is(err, fs.ErrPermission))
}

func TestLoader_Load_ParseErrors(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		content     string
		wantContext string
	}{
		{
			name:        "toml",
			path:        "/base/etc.toml",
			content:     "[install\nsteps = 1\n",
			wantContext: "/base/etc.toml:",
		},
		{
			name:        "yaml",
			path:        "/base/etc.yaml",
			content:     "install:\n  steps: [\n",
			wantContext: "/base/etc.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := mocks.NewFileSystem()
			fsys.AddFile(tt.path, tt.content)

			_, err := NewLoader(fsys).Load(tt.path)

			require.Error(t, err)
			var ue *UserError
			require.True(t, errors.As(err, &ue))
			assert.Equal(t, ErrCodeConfigParse, ue.Code)
			assert.Contains(t, ue.Context, tt.wantContext)
			assert.NotEmpty(t, ue.Suggestion)
			assert.NotNil(t, errors.Unwrap(err))
		})
	}
}

func TestDecode_TOMLIntegersStayIntegers(t *testing.T) {
	doc, err := Decode("etc.toml", []byte("[install]\nsteps = 3\n"))
	require.NoError(t, err)

	install := doc["install"].(map[string]interface{})
	assert.Equal(t, int64(3), install["steps"])
}
