package packages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_List(t *testing.T) {
	p, err := Normalize([]interface{}{"ripgrep", "jq", "ripgrep"})
	require.NoError(t, err)

	assert.Equal(t, []string{"ripgrep", "jq"}, p.Names())
	v, ok := p.Version("jq")
	assert.True(t, ok)
	assert.Empty(t, v)
}

func TestNormalize_Table(t *testing.T) {
	p, err := Normalize(map[string]interface{}{"python": "3.12", "jq": ""})
	require.NoError(t, err)

	assert.Equal(t, []Package{{Name: "jq"}, {Name: "python", Version: "3.12"}}, p.Entries())
}

func TestNormalize_TypedInputs(t *testing.T) {
	fromStrings, err := Normalize([]string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, fromStrings.Names())

	fromMap, err := Normalize(map[string]string{"b": "2", "a": "1"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, fromMap.AsMap())
}

func TestNormalize_Idempotent(t *testing.T) {
	declarations := []interface{}{
		[]interface{}{},
		[]interface{}{"git"},
		[]interface{}{"b", "a", "c", "a"},
		[]string{"homebrew/cask/firefox", "jq"},
		map[string]interface{}{},
		map[string]interface{}{"z": "", "a": "1.0", "m": "latest"},
		map[string]string{"python": "3.12"},
	}

	for _, decl := range declarations {
		once, err := Normalize(decl)
		require.NoError(t, err)
		twice, err := Normalize(once)
		require.NoError(t, err)

		assert.True(t, once.Equal(twice), "normalize(normalize(%v)) != normalize(%v)", decl, decl)
		assert.Equal(t, once.Entries(), twice.Entries())
	}
}

func TestNormalize_TypeErrors(t *testing.T) {
	tests := []struct {
		name string
		decl interface{}
		want string
	}{
		{"scalar", "jq", "expected an array of names or a table of versions, got a string"},
		{"number element", []interface{}{"jq", int64(1)}, "element 1 must be a string, got a number"},
		{"table element", []interface{}{map[string]interface{}{}}, "element 0 must be a string, got a table"},
		{"non-string version", map[string]interface{}{"jq": 1.6}, `version of "jq" must be a string, got a number`},
		{"nil", nil, "got nothing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.decl)

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfigType)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNormalize_EmptyName(t *testing.T) {
	_, err := Normalize([]interface{}{"jq", " "})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.NotErrorIs(t, err, ErrConfigType)
}

func TestPackages_Merge(t *testing.T) {
	base := NewPackages(Package{Name: "a", Version: "1"}, Package{Name: "b"})
	override := NewPackages(Package{Name: "c"}, Package{Name: "a", Version: "2"})

	merged := base.Merge(override)

	assert.Equal(t, []Package{
		{Name: "a", Version: "2"},
		{Name: "b"},
		{Name: "c"},
	}, merged.Entries())
	assert.Equal(t, "1", base.AsMap()["a"], "merge does not modify the receiver")
}

func TestPackages_ZeroValue(t *testing.T) {
	var p Packages

	assert.Equal(t, 0, p.Len())
	assert.Empty(t, p.Names())
	assert.Empty(t, p.String())
	assert.True(t, p.Equal(NewPackages()))

	merged := p.Merge(NewPackages(Package{Name: "jq"}))
	assert.Equal(t, 1, merged.Len())
	assert.Equal(t, 0, p.Len())
}

func TestPackages_NamesIsCopy(t *testing.T) {
	p := NewPackages(Package{Name: "jq"})

	names := p.Names()
	names[0] = "mutated"

	assert.Equal(t, []string{"jq"}, p.Names())
}

func TestPackages_Equal(t *testing.T) {
	a := NewPackages(Package{Name: "a"}, Package{Name: "b"})

	assert.True(t, a.Equal(NewPackages(Package{Name: "a"}, Package{Name: "b"})))
	assert.False(t, a.Equal(NewPackages(Package{Name: "b"}, Package{Name: "a"})), "order matters")
	assert.False(t, a.Equal(NewPackages(Package{Name: "a"}, Package{Name: "b", Version: "1"})))
	assert.False(t, a.Equal(NewPackages(Package{Name: "a"})))
}

func TestPackage_SpecAndBareName(t *testing.T) {
	tests := []struct {
		pkg      Package
		wantSpec string
		wantBare string
	}{
		{Package{Name: "jq"}, "jq", "jq"},
		{Package{Name: "python", Version: "3.12"}, "python@3.12", "python"},
		{Package{Name: "hashicorp/tap/terraform"}, "hashicorp/tap/terraform", "terraform"},
		{Package{Name: "homebrew/cask/firefox", Version: "120"}, "homebrew/cask/firefox@120", "firefox"},
	}

	for _, tt := range tests {
		t.Run(tt.pkg.Name, func(t *testing.T) {
			assert.Equal(t, tt.wantSpec, tt.pkg.Spec())
			assert.Equal(t, tt.wantBare, tt.pkg.BareName())
		})
	}
}

func TestPackages_String(t *testing.T) {
	p := NewPackages(Package{Name: "jq"}, Package{Name: "python", Version: "3.12"})
	assert.Equal(t, "jq, python@3.12", p.String())
}
