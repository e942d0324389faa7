package caravan

import (
	"github.com/caravan-pm/caravan/constraint"
	"github.com/caravan-pm/caravan/graph"
	"github.com/caravan-pm/caravan/version"
)

// Graph builds a dependency graph of an environment's installed
// packages. Dependency edges come from both install paths: the
// registry entries of installed versions and the declared lists of
// unversioned installs. An empty name means the current environment.
func (m *Manager) Graph(envName string) (*graph.Graph, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	env, err := m.namedEnvLocked(envName)
	if err != nil {
		return nil, err
	}

	pkgs := make([]graph.Package, 0, len(env.installed))
	for name := range env.installed {
		ver, err := version.MaxOf(env.versionsOf(name))
		if err != nil {
			return nil, err
		}

		var deps []string
		for _, spec := range m.depListsOf(env, name) {
			req, err := constraint.ParseRequirement(spec)
			if err != nil {
				continue
			}
			deps = append(deps, req.Name)
		}

		pkgs = append(pkgs, graph.Package{
			Name:         name,
			Version:      ver,
			Reason:       env.provenance[name],
			Dependencies: deps,
		})
	}
	return graph.Build(pkgs), nil
}
