// Package packages implements the system-packages step: validation of
// package declarations and idempotent installation through a package
// manager.
package packages

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/etc-dev/etc/internal/domain/compiler"
)

// Package is one declared package.
type Package struct {
	Name    string
	Version string
}

// Spec returns the install argument: name, or name@version.
func (p Package) Spec() string {
	if p.Version == "" {
		return p.Name
	}
	return p.Name + "@" + p.Version
}

// BareName returns the name the package manager lists once installed. Tap
// references such as "homebrew/cask/firefox" reduce to their last element.
func (p Package) BareName() string {
	if strings.Contains(p.Name, "/") {
		return path.Base(p.Name)
	}
	return p.Name
}

// Packages is an insertion-ordered name to version mapping. An empty
// version means unconstrained. The zero value is empty and ready to use.
type Packages struct {
	names    []string
	versions map[string]string
}

// NewPackages builds Packages from entries; later entries override earlier
// ones with the same name.
func NewPackages(entries ...Package) Packages {
	var p Packages
	for _, e := range entries {
		p = p.with(e.Name, e.Version)
	}
	return p
}

// with returns a copy of p with name set to version. An existing name keeps
// its position.
func (p Packages) with(name, version string) Packages {
	n := p.clone()
	if n.versions == nil {
		n.versions = make(map[string]string)
	}
	if _, exists := n.versions[name]; !exists {
		n.names = append(n.names, name)
	}
	n.versions[name] = version
	return n
}

func (p Packages) clone() Packages {
	n := Packages{
		names:    make([]string, len(p.names)),
		versions: make(map[string]string, len(p.versions)),
	}
	copy(n.names, p.names)
	for k, v := range p.versions {
		n.versions[k] = v
	}
	return n
}

// Len returns the number of packages.
func (p Packages) Len() int {
	return len(p.names)
}

// Names returns the package names in order.
func (p Packages) Names() []string {
	result := make([]string, len(p.names))
	copy(result, p.names)
	return result
}

// Version returns the version declared for name.
func (p Packages) Version(name string) (string, bool) {
	v, ok := p.versions[name]
	return v, ok
}

// Entries returns the packages in order.
func (p Packages) Entries() []Package {
	result := make([]Package, 0, len(p.names))
	for _, name := range p.names {
		result = append(result, Package{Name: name, Version: p.versions[name]})
	}
	return result
}

// Merge returns p overridden by other. Names already in p keep their
// position; new names are appended in other's order.
func (p Packages) Merge(other Packages) Packages {
	result := p.clone()
	for _, e := range other.Entries() {
		result = result.with(e.Name, e.Version)
	}
	return result
}

// Equal reports whether p and other hold the same packages in the same order.
func (p Packages) Equal(other Packages) bool {
	if len(p.names) != len(other.names) {
		return false
	}
	for i, name := range p.names {
		if other.names[i] != name || other.versions[name] != p.versions[name] {
			return false
		}
	}
	return true
}

// AsMap returns the packages as a plain map.
func (p Packages) AsMap() map[string]string {
	result := make(map[string]string, len(p.versions))
	for k, v := range p.versions {
		result[k] = v
	}
	return result
}

// String renders the packages as "a, b@1".
func (p Packages) String() string {
	specs := make([]string, 0, len(p.names))
	for _, e := range p.Entries() {
		specs = append(specs, e.Spec())
	}
	return strings.Join(specs, ", ")
}

// Normalize converts a package declaration into Packages. A sequence of
// names yields unconstrained versions in sequence order. A table must map
// names to version strings; since decoded tables carry no order, its
// entries are ordered by name. Normalizing Packages returns an equal copy.
func Normalize(decl interface{}) (Packages, error) {
	switch v := decl.(type) {
	case Packages:
		return v.clone(), nil
	case []string:
		items := make([]interface{}, len(v))
		for i, s := range v {
			items[i] = s
		}
		return normalizeList(items)
	case []interface{}:
		return normalizeList(v)
	case map[string]string:
		table := make(map[string]interface{}, len(v))
		for k, s := range v {
			table[k] = s
		}
		return normalizeTable(table)
	case map[string]interface{}:
		return normalizeTable(v)
	default:
		return Packages{}, fmt.Errorf("%w: expected an array of names or a table of versions, got %s",
			ErrConfigType, compiler.TypeName(decl))
	}
}

func normalizeList(items []interface{}) (Packages, error) {
	var p Packages
	for i, item := range items {
		name, ok := item.(string)
		if !ok {
			return Packages{}, fmt.Errorf("%w: element %d must be a string, got %s",
				ErrConfigType, i, compiler.TypeName(item))
		}
		if strings.TrimSpace(name) == "" {
			return Packages{}, fmt.Errorf("%w: element %d is an empty package name", ErrInvalidConfig, i)
		}
		p = p.with(name, "")
	}
	return p, nil
}

func normalizeTable(table map[string]interface{}) (Packages, error) {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)

	var p Packages
	for _, name := range names {
		version, ok := table[name].(string)
		if !ok {
			return Packages{}, fmt.Errorf("%w: version of %q must be a string, got %s",
				ErrConfigType, name, compiler.TypeName(table[name]))
		}
		if strings.TrimSpace(name) == "" {
			return Packages{}, fmt.Errorf("%w: empty package name", ErrInvalidConfig)
		}
		p = p.with(name, version)
	}
	return p, nil
}
