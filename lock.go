package caravan

import (
	"sort"

	"github.com/caravan-pm/caravan/constraint"
	"github.com/caravan-pm/caravan/lockfile"
	"github.com/caravan-pm/caravan/version"
)

// GenerateLockfile snapshots an environment's installed packages as a
// flat name → version lockfile. For packages with more than one
// recorded version, the highest version is pinned. An empty name means
// the current environment.
func (m *Manager) GenerateLockfile(envName string) (*lockfile.Lockfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	env, err := m.namedEnvLocked(envName)
	if err != nil {
		return nil, err
	}

	lf := lockfile.New()
	for name := range env.installed {
		versions := env.versionsOf(name)
		pinned, err := version.MaxOf(versions)
		if err != nil {
			return nil, err
		}
		lf.Set(name, pinned)
	}
	m.logger.Debug("generated lockfile", "env", envName, "packages", lf.Len())
	return lf, nil
}

// InstallFromLockfile replays a lockfile into an environment by
// installing each pinned package as an exact-version requirement
// through the resolver. Pins are replayed in dependency order so a
// pinned dependency is committed before any dependent whose
// constraints could otherwise resolve that name to a newer version;
// a lockfile generated from a consistent environment therefore
// reproduces that environment exactly. Each entry inherits the
// resolver's invariants, including per-entry atomicity: a failing
// entry aborts the replay with earlier entries already committed and
// the failing one not. An empty name means the current environment.
func (m *Manager) InstallFromLockfile(envName string, lf *lockfile.Lockfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	env, err := m.namedEnvLocked(envName)
	if err != nil {
		return err
	}

	for _, name := range m.replayOrder(lf) {
		pinned, _ := lf.Get(name)
		if err := m.installInto(env, name+"=="+pinned); err != nil {
			return err
		}
	}
	return nil
}

// replayOrder orders pinned names so every package follows the pinned
// packages its pinned version depends on, per the registry. Unrelated
// packages and tie-breaks stay in sorted name order; names outside the
// pinned set are ignored. Callers must hold m.mu.
func (m *Manager) replayOrder(lf *lockfile.Lockfile) []string {
	names := lf.Names()
	order := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))

	var visit func(name string)
	visit = func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true

		pinned, _ := lf.Get(name)
		var deps []string
		for _, spec := range m.registry.DependenciesOf(name, pinned) {
			req, err := constraint.ParseRequirement(spec)
			if err != nil {
				continue
			}
			if _, ok := lf.Get(req.Name); ok {
				deps = append(deps, req.Name)
			}
		}
		sort.Strings(deps)
		for _, dep := range deps {
			visit(dep)
		}
		order = append(order, name)
	}

	for _, name := range names {
		visit(name)
	}
	return order
}
