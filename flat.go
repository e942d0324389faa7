package caravan

import (
	"sort"

	"github.com/caravan-pm/caravan/constraint"
)

// flatVersion is the version recorded for packages installed through
// the unversioned path.
const flatVersion = "0.0.0"

// InstallPackage installs a package by name with an explicit list of
// dependency names, without consulting the registry or any version
// constraints. Unknown dependencies are installed as empty packages.
//
// The declared dependency lists of all installed packages form an
// adjacency map; if adding this declaration would close a cycle, the
// call fails with a CyclicDependencyError naming the offending package
// and the environment is left unchanged.
func (m *Manager) InstallPackage(name string, deps []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	env, err := m.currentEnvLocked()
	if err != nil {
		return err
	}

	// Probe the prospective adjacency map before touching anything.
	adjacency := make(map[string][]string, len(env.declaredDeps)+1)
	for pkg, pkgDeps := range env.declaredDeps {
		adjacency[pkg] = pkgDeps
	}
	adjacency[name] = deps

	walk := &flatWalk{adjacency: adjacency, state: make(map[string]byte)}
	if err := walk.visit(name); err != nil {
		m.logger.Debug("install rejected", "env", env.name, "package", name, "error", err)
		return err
	}

	env.declaredDeps[name] = append([]string(nil), deps...)
	if !env.hasPackage(name) {
		env.addVersion(name, flatVersion)
		env.provenance[name] = reasonDirect
	}
	for _, dep := range deps {
		if env.hasPackage(dep) {
			continue
		}
		env.addVersion(dep, flatVersion)
		env.provenance[dep] = "dependency of " + name + "==" + flatVersion
		if _, ok := env.declaredDeps[dep]; !ok {
			env.declaredDeps[dep] = nil
		}
	}

	m.logger.Info("installed package", "env", env.name, "package", name, "deps", len(deps))
	return nil
}

// Node colors for the dependency walk.
const (
	flatWhite byte = iota // unvisited
	flatGray              // on the current path
	flatBlack             // fully explored
)

// flatWalk is a depth-first walk over a declared-dependency adjacency
// map. Nodes on the current path are gray; re-entering a gray node
// means the declarations form a cycle.
type flatWalk struct {
	adjacency map[string][]string
	state     map[string]byte
	path      []string
}

func (w *flatWalk) visit(name string) error {
	switch w.state[name] {
	case flatGray:
		cycle := append(append([]string(nil), w.path...), name)
		return &CyclicDependencyError{Package: name, Cycle: cycle}
	case flatBlack:
		return nil
	}

	w.state[name] = flatGray
	w.path = append(w.path, name)
	for _, dep := range w.adjacency[name] {
		if err := w.visit(dep); err != nil {
			return err
		}
	}
	w.path = w.path[:len(w.path)-1]
	w.state[name] = flatBlack
	return nil
}

// RemovePackage removes a package from the current environment. The
// removal is rejected with a DependentExistsError while any other
// installed package's declared dependency list still names it,
// whether that list came from an unversioned install or from the
// registry entry of an installed version.
func (m *Manager) RemovePackage(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	env, err := m.currentEnvLocked()
	if err != nil {
		return err
	}
	if !env.hasPackage(name) {
		return &PackageNotInstalledError{Name: name}
	}

	dependents := m.dependentsOf(env, name)
	if len(dependents) > 0 {
		sort.Strings(dependents)
		return &DependentExistsError{Name: name, Dependents: dependents}
	}

	env.removePackage(name)
	m.logger.Info("removed package", "env", env.name, "package", name)
	return nil
}

// dependentsOf lists the installed packages whose declared dependency
// lists mention name. Callers must hold m.mu.
func (m *Manager) dependentsOf(env *Environment, name string) []string {
	var dependents []string
	for pkg := range env.installed {
		if pkg == name {
			continue
		}
		if declaresDependency(m.depListsOf(env, pkg), name) {
			dependents = append(dependents, pkg)
		}
	}
	return dependents
}

// depListsOf collects every dependency spec an installed package
// declares: its unversioned declaration plus the registry entries of
// each installed version.
func (m *Manager) depListsOf(env *Environment, pkg string) []string {
	specs := append([]string(nil), env.declaredDeps[pkg]...)
	for ver := range env.installed[pkg] {
		specs = append(specs, m.registry.DependenciesOf(pkg, ver)...)
	}
	return specs
}

// declaresDependency reports whether any requirement spec in the list
// names the target package.
func declaresDependency(specs []string, target string) bool {
	for _, spec := range specs {
		req, err := constraint.ParseRequirement(spec)
		if err != nil {
			// Unversioned declarations are bare names; a spec that
			// fails to parse cannot name the target.
			continue
		}
		if req.Name == target {
			return true
		}
	}
	return false
}
