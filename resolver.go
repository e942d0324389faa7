package caravan

import (
	"github.com/caravan-pm/caravan/constraint"
	"github.com/caravan-pm/caravan/version"
)

// reasonDirect is the provenance recorded for top-level installs.
const reasonDirect = "direct install"

// session is the ephemeral state of one top-level Install call. It is
// discarded after commit or failure; nothing in it touches the
// environment until the whole requirement tree has resolved.
type session struct {
	// chosen maps package name to the version selected in this
	// session. A name resolves to at most one version per session,
	// which is what makes diamond dependencies detectable.
	chosen map[string]string

	// reasons holds the provenance to commit alongside each choice.
	reasons map[string]string

	// resolving marks packages whose dependency subtree is still
	// being walked (gray nodes). Re-entering a gray node is a cycle.
	resolving map[string]struct{}

	// path is the current resolution chain, used to report cycles.
	path []string
}

func newSession() *session {
	return &session{
		chosen:    make(map[string]string),
		reasons:   make(map[string]string),
		resolving: make(map[string]struct{}),
	}
}

// Install resolves a requirement string (e.g. "web_framework>=1.0,<3.0")
// against the current environment and commits the resolved set.
//
// The commit is all-or-nothing: if any package in the requirement tree
// cannot be satisfied, the environment is left byte-for-byte unchanged
// and the error describes the first failure. Installing an
// already-satisfied requirement is a no-op and does not overwrite
// provenance.
func (m *Manager) Install(requirement string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	env, err := m.currentEnvLocked()
	if err != nil {
		return err
	}
	return m.installInto(env, requirement)
}

// installInto runs one resolution session against an environment and
// commits the result. Callers must hold m.mu.
func (m *Manager) installInto(env *Environment, requirement string) error {
	s := newSession()
	if err := m.resolve(requirement, "", env, s); err != nil {
		m.logger.Debug("install failed", "env", env.name, "requirement", requirement, "error", err)
		return err
	}

	for name, ver := range s.chosen {
		env.addVersion(name, ver)
		env.provenance[name] = s.reasons[name]
	}
	m.logger.Info("installed", "env", env.name, "requirement", requirement, "packages", len(s.chosen))
	return nil
}

// resolve satisfies one requirement within a session. parent is the
// "name==version" of the requiring package, or "" for a top-level
// install. Dependencies are resolved post-order: a package's whole
// subtree must resolve before resolve returns, so later siblings see
// every choice made below this one.
func (m *Manager) resolve(requirement, parent string, env *Environment, s *session) error {
	req, err := constraint.ParseRequirement(requirement)
	if err != nil {
		return err
	}

	// Re-entering a package whose subtree is still being walked means
	// the requirement chain loops back on itself.
	if _, open := s.resolving[req.Name]; open {
		cycle := append(append([]string(nil), s.path...), req.Name+"=="+s.chosen[req.Name])
		return &CyclicDependencyError{Package: req.Name, Cycle: cycle}
	}

	// Already chosen in this session: the existing choice must also
	// satisfy this requirement, otherwise two branches of the tree
	// demand incompatible versions (a diamond conflict).
	if chosen, ok := s.chosen[req.Name]; ok {
		ok, err := constraint.Match(chosen, req.Constraints)
		if err != nil {
			return err
		}
		if !ok {
			return &VersionConflictError{
				Name:       req.Name,
				Constraint: renderConstraints(req.Constraints),
				Existing:   chosen,
				RequiredBy: requiredBy(parent),
			}
		}
		return nil
	}

	// Already installed in the environment: satisfied requirements
	// are left alone (no re-resolution, no provenance overwrite);
	// unsatisfiable ones conflict, since an environment holds at most
	// one live version of a package.
	if installed := env.versionsOf(req.Name); len(installed) > 0 {
		for _, ver := range installed {
			ok, err := constraint.Match(ver, req.Constraints)
			if err != nil {
				return err
			}
			if ok {
				return nil
			}
		}
		return &VersionConflictError{
			Name:       req.Name,
			Constraint: renderConstraints(req.Constraints),
			Existing:   installed[0],
			RequiredBy: requiredBy(parent),
		}
	}

	if !m.registry.Has(req.Name) {
		return &PackageUnregisteredError{Name: req.Name}
	}

	var candidates []string
	for _, ver := range m.registry.CandidateVersions(req.Name) {
		ok, err := constraint.Match(ver, req.Constraints)
		if err != nil {
			return err
		}
		if ok {
			candidates = append(candidates, ver)
		}
	}
	if len(candidates) == 0 {
		return &PackageNotFoundError{
			Name:       req.Name,
			Constraint: renderConstraints(req.Constraints),
		}
	}

	// Latest-compatible policy: the highest satisfying version wins.
	selected, err := version.MaxOf(candidates)
	if err != nil {
		return err
	}

	s.chosen[req.Name] = selected
	if parent == "" {
		s.reasons[req.Name] = reasonDirect
	} else {
		s.reasons[req.Name] = "dependency of " + parent
	}
	m.logger.Debug("selected version",
		"package", req.Name, "version", selected, "candidates", len(candidates), "parent", parent)

	key := req.Name + "==" + selected
	s.resolving[req.Name] = struct{}{}
	s.path = append(s.path, key)

	for _, dep := range m.registry.DependenciesOf(req.Name, selected) {
		if err := m.resolve(dep, key, env, s); err != nil {
			return err
		}
	}

	s.path = s.path[:len(s.path)-1]
	delete(s.resolving, req.Name)
	return nil
}

// requiredBy renders the origin of a requirement for error messages.
func requiredBy(parent string) string {
	if parent == "" {
		return reasonDirect
	}
	return "required by " + parent
}

// renderConstraints renders a constraint list back into requirement
// syntax (">=1.0,<2.0").
func renderConstraints(cs []constraint.Constraint) string {
	out := ""
	for i, c := range cs {
		if i > 0 {
			out += ","
		}
		out += c.String()
	}
	return out
}
