// Package caravan implements an environment-scoped package manager:
// an in-memory registry of package versions with declared dependency
// constraints, a constraint resolver that computes a consistent
// installable set per environment, and lockfile snapshots that replay
// a resolved environment exactly.
//
// # Overview
//
// The package is built from small pieces:
//
//   - Registry: name → version → dependency requirement strings
//   - Environment: an isolated installed set with provenance
//   - Manager: owns environments, the current-environment pointer,
//     and all install/remove/query operations
//   - version, constraint: the version ordering and requirement grammar
//   - lockfile: flat name → version snapshots with deterministic JSON
//   - graph: dependency graphs over an environment for explanations
//
// # Quick start
//
//	m, _ := caravan.NewManager()
//	m.AddToRegistry("lib_b", "1.0", nil)
//	m.AddToRegistry("app_a", "1.0", []string{"lib_b>=1.0"})
//	m.CreateEnv("prod")
//	m.UseEnv("prod")
//	if err := m.Install("app_a>=1.0"); err != nil { ... }
//	reason, _, _ := m.Why("lib_b") // "dependency of app_a==1.0"
//
// Installation is all-or-nothing: if any part of a requirement tree
// cannot be satisfied, the environment is left exactly as it was and a
// structured error describes the failure. Version selection is
// latest-compatible: among registered versions satisfying every
// constraint, the highest wins.
//
// # Thread safety
//
// A Manager serializes all operations with an internal mutex and is
// safe for concurrent use. Distinct managers are fully independent.
package caravan

import (
	"log/slog"
	"sync"
)

// Manager owns a registry, a set of named environments, and the
// current-environment pointer. All state is explicit per instance;
// there are no package-level globals, so independent managers can
// coexist in one process.
type Manager struct {
	mu sync.Mutex

	registry *Registry
	envs     map[string]*Environment

	// current is the name of the selected environment, or "" if no
	// environment has been selected yet.
	current string

	logger *slog.Logger
}

// NewManager creates a manager with an empty registry and no
// environments. No environment is selected: callers must CreateEnv
// and UseEnv before installing.
func NewManager(opts ...Option) (*Manager, error) {
	cfg, err := newManagerConfig(opts...)
	if err != nil {
		return nil, err
	}
	reg := cfg.registry
	if reg == nil {
		reg = NewRegistry()
	}
	return &Manager{
		registry: reg,
		envs:     make(map[string]*Environment),
		logger:   cfg.log(),
	}, nil
}
