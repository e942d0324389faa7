package caravan

import "testing"

// newTestManager returns a manager with no registry entries and no
// environments.
func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager()
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

// newWebStackManager returns a manager seeded with a small registry
// (a web framework, its HTTP layer, and a JSON parser) and the "prod"
// environment created and selected.
func newWebStackManager(t *testing.T) *Manager {
	t.Helper()
	m := newTestManager(t)

	mustRegister(t, m, "json_parser", "1.0", nil)
	mustRegister(t, m, "json_parser", "2.0", nil)
	mustRegister(t, m, "http_core", "1.0", nil)
	mustRegister(t, m, "http_core", "1.2", []string{"json_parser>=1.0"})
	mustRegister(t, m, "web_framework", "1.0", []string{"http_core>=1.0"})
	mustRegister(t, m, "web_framework", "1.5", []string{"http_core>=1.0,<2.0", "json_parser>=2.0"})
	mustRegister(t, m, "web_framework", "2.0", []string{"http_core>=1.2"})

	mustUseEnv(t, m, "prod")
	return m
}

func mustRegister(t *testing.T, m *Manager, name, version string, deps []string) {
	t.Helper()
	if err := m.AddToRegistry(name, version, deps); err != nil {
		t.Fatalf("AddToRegistry(%s, %s): %v", name, version, err)
	}
}

func mustUseEnv(t *testing.T, m *Manager, name string) {
	t.Helper()
	if err := m.CreateEnv(name); err != nil {
		t.Fatalf("CreateEnv(%s): %v", name, err)
	}
	if err := m.UseEnv(name); err != nil {
		t.Fatalf("UseEnv(%s): %v", name, err)
	}
}

func mustInstall(t *testing.T, m *Manager, requirement string) {
	t.Helper()
	if err := m.Install(requirement); err != nil {
		t.Fatalf("Install(%s): %v", requirement, err)
	}
}

// assertInstalled fails unless the exact (name, version) pair is
// installed in the current environment.
func assertInstalled(t *testing.T, m *Manager, name, version string) {
	t.Helper()
	ok, err := m.IsInstalled(name, version)
	if err != nil {
		t.Fatalf("IsInstalled(%s, %s): %v", name, version, err)
	}
	if !ok {
		t.Errorf("expected %s==%s to be installed", name, version)
	}
}

// assertNotInstalled fails if any version of the package is installed
// in the current environment.
func assertNotInstalled(t *testing.T, m *Manager, name string) {
	t.Helper()
	ok, err := m.IsInstalled(name, "")
	if err != nil {
		t.Fatalf("IsInstalled(%s): %v", name, err)
	}
	if ok {
		t.Errorf("expected %s to not be installed", name)
	}
}

// assertWhy fails unless the package's recorded provenance matches.
func assertWhy(t *testing.T, m *Manager, name, want string) {
	t.Helper()
	reason, ok, err := m.Why(name)
	if err != nil {
		t.Fatalf("Why(%s): %v", name, err)
	}
	if !ok {
		t.Fatalf("Why(%s): package has no provenance", name)
	}
	if reason != want {
		t.Errorf("Why(%s) = %q, want %q", name, reason, want)
	}
}
