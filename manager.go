package caravan

import (
	"sort"

	"github.com/caravan-pm/caravan/constraint"
)

// AddToRegistry registers a package version with its dependency
// requirement strings. Re-registering an existing (name, version)
// pair overwrites that version's dependency list.
func (m *Manager) AddToRegistry(name, version string, deps []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.registry.Add(name, version, deps); err != nil {
		return err
	}
	m.logger.Debug("registered package", "name", name, "version", version, "deps", len(deps))
	return nil
}

// Registry returns the manager's registry for direct querying. The
// returned registry must not be mutated while the manager is in use.
func (m *Manager) Registry() *Registry {
	return m.registry
}

// CreateEnv registers an empty environment under the given name.
// Creating an environment that already exists is a no-op: existing
// installed state is preserved, which keeps provisioning scripts
// re-runnable.
func (m *Manager) CreateEnv(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.envs[name]; ok {
		return nil
	}
	m.envs[name] = newEnvironment(name)
	m.logger.Info("created environment", "env", name)
	return nil
}

// UseEnv selects the current environment. All install, remove and
// query operations apply to the current environment.
func (m *Manager) UseEnv(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.envs[name]; !ok {
		return &EnvironmentNotFoundError{Name: name}
	}
	m.current = name
	return nil
}

// CurrentEnv returns the name of the selected environment, or false
// if none has been selected.
func (m *Manager) CurrentEnv() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current, m.current != ""
}

// Environments returns the names of all environments, sorted.
func (m *Manager) Environments() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.envs))
	for name := range m.envs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// currentEnvLocked returns the selected environment. Callers must
// hold m.mu.
func (m *Manager) currentEnvLocked() (*Environment, error) {
	if m.current == "" {
		return nil, ErrNoEnvironmentSelected
	}
	env, ok := m.envs[m.current]
	if !ok {
		return nil, &EnvironmentNotFoundError{Name: m.current}
	}
	return env, nil
}

// envLocked returns the named environment. Callers must hold m.mu.
func (m *Manager) envLocked(name string) (*Environment, error) {
	env, ok := m.envs[name]
	if !ok {
		return nil, &EnvironmentNotFoundError{Name: name}
	}
	return env, nil
}

// namedEnvLocked resolves an environment name, treating "" as the
// current environment. Callers must hold m.mu.
func (m *Manager) namedEnvLocked(name string) (*Environment, error) {
	if name == "" {
		return m.currentEnvLocked()
	}
	return m.envLocked(name)
}

// IsInstalled reports whether the package is installed in the current
// environment. An empty version matches any installed version.
func (m *Manager) IsInstalled(name, version string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	env, err := m.currentEnvLocked()
	if err != nil {
		return false, err
	}
	if version == "" {
		return env.hasPackage(name), nil
	}
	return env.hasVersion(name, version), nil
}

// Why returns the reason the package is installed in the current
// environment ("direct install" or "dependency of parent==version").
// ok is false if the package is not installed.
func (m *Manager) Why(name string) (reason string, ok bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	env, err := m.currentEnvLocked()
	if err != nil {
		return "", false, err
	}
	if !env.hasPackage(name) {
		return "", false, nil
	}
	reason, ok = env.provenance[name]
	return reason, ok, nil
}

// FindPackage returns every registered version of the package that
// satisfies the constraint list (e.g. ">=1.0,<2.0"). An empty
// constraint string matches all registered versions. The result order
// is unspecified.
func (m *Manager) FindPackage(name, constraints string) ([]PackageVersion, error) {
	cs, err := constraint.ParseConstraints(constraints)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var out []PackageVersion
	for _, ver := range m.registry.CandidateVersions(name) {
		ok, err := constraint.Match(ver, cs)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, PackageVersion{Name: name, Version: ver})
		}
	}
	return out, nil
}

// ListPackages returns the installed (name, version) pairs of the
// named environment, sorted. An empty name means the current
// environment.
func (m *Manager) ListPackages(envName string) ([]PackageVersion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	env, err := m.namedEnvLocked(envName)
	if err != nil {
		return nil, err
	}
	return env.packages(), nil
}

// DependenciesOf returns the dependency requirement strings a
// registered package version declares, or nil if unknown.
func (m *Manager) DependenciesOf(name, version string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.registry.DependenciesOf(name, version)
}
