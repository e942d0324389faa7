package caravan

import (
	"github.com/caravan-pm/caravan/constraint"
	"github.com/caravan-pm/caravan/version"
)

// Registry maps package names to their registered versions and each
// version's declared dependency requirement strings. Entries are only
// ever created by explicit registration; resolution never mutates the
// registry. Registering an existing (name, version) pair overwrites
// that version's dependency list.
type Registry struct {
	entries map[string]map[string][]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]map[string][]string)}
}

// Add registers a package version with its dependency requirement
// strings. The version and every dependency spec are validated up
// front so a bad registration fails here rather than mid-resolution.
func (r *Registry) Add(name, ver string, deps []string) error {
	if _, err := version.Parse(ver); err != nil {
		return err
	}
	for _, dep := range deps {
		if _, err := constraint.ParseRequirement(dep); err != nil {
			return err
		}
	}

	versions := r.entries[name]
	if versions == nil {
		versions = make(map[string][]string)
		r.entries[name] = versions
	}
	versions[ver] = append([]string(nil), deps...)
	return nil
}

// Has reports whether any version of the package is registered.
func (r *Registry) Has(name string) bool {
	return len(r.entries[name]) > 0
}

// CandidateVersions returns every registered version of the package,
// unsorted. The result is a copy; callers may reorder it freely.
func (r *Registry) CandidateVersions(name string) []string {
	versions := r.entries[name]
	if len(versions) == 0 {
		return nil
	}
	out := make([]string, 0, len(versions))
	for v := range versions {
		out = append(out, v)
	}
	return out
}

// DependenciesOf returns the dependency requirement strings declared
// by an exact package version, or nil if that version is unknown.
func (r *Registry) DependenciesOf(name, ver string) []string {
	deps, ok := r.entries[name][ver]
	if !ok {
		return nil
	}
	out := make([]string, len(deps))
	copy(out, deps)
	return out
}

// hasVersion reports whether the exact (name, version) pair exists.
func (r *Registry) hasVersion(name, ver string) bool {
	_, ok := r.entries[name][ver]
	return ok
}
