package caravan

import "sort"

// Environment is an isolated install target: a set of installed
// package versions plus the recorded reason each package is present.
// Environments never share state; the same package may be installed at
// different versions in different environments.
type Environment struct {
	name string

	// installed maps package name to the set of installed versions.
	// The constraint-resolving install path keeps at most one version
	// per name; the unversioned path records the zero version.
	installed map[string]map[string]struct{}

	// provenance maps package name to the reason it was installed
	// ("direct install" or "dependency of parent==version").
	provenance map[string]string

	// declaredDeps holds the dependency-name lists declared through
	// the unversioned install path, keyed by package name.
	declaredDeps map[string][]string
}

func newEnvironment(name string) *Environment {
	return &Environment{
		name:         name,
		installed:    make(map[string]map[string]struct{}),
		provenance:   make(map[string]string),
		declaredDeps: make(map[string][]string),
	}
}

// Name returns the environment's name.
func (e *Environment) Name() string { return e.name }

// addVersion records an installed version of a package.
func (e *Environment) addVersion(name, ver string) {
	versions := e.installed[name]
	if versions == nil {
		versions = make(map[string]struct{})
		e.installed[name] = versions
	}
	versions[ver] = struct{}{}
}

// versionsOf returns the installed versions of a package, unsorted.
func (e *Environment) versionsOf(name string) []string {
	versions := e.installed[name]
	if len(versions) == 0 {
		return nil
	}
	out := make([]string, 0, len(versions))
	for v := range versions {
		out = append(out, v)
	}
	return out
}

// hasPackage reports whether any version of the package is installed.
func (e *Environment) hasPackage(name string) bool {
	return len(e.installed[name]) > 0
}

// hasVersion reports whether the exact version is installed.
func (e *Environment) hasVersion(name, ver string) bool {
	_, ok := e.installed[name][ver]
	return ok
}

// removePackage drops every trace of a package from the environment.
func (e *Environment) removePackage(name string) {
	delete(e.installed, name)
	delete(e.provenance, name)
	delete(e.declaredDeps, name)
}

// packages returns the installed (name, version) pairs sorted by name
// then version string.
func (e *Environment) packages() []PackageVersion {
	out := make([]PackageVersion, 0, len(e.installed))
	for name, versions := range e.installed {
		for v := range versions {
			out = append(out, PackageVersion{Name: name, Version: v})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Version < out[j].Version
	})
	return out
}

// PackageVersion is an installed or registered (name, version) pair.
type PackageVersion struct {
	// Name is the package name.
	Name string `json:"name"`

	// Version is the version string.
	Version string `json:"version"`
}

// String renders the pair in requirement syntax ("name==version").
func (p PackageVersion) String() string {
	return p.Name + "==" + p.Version
}
