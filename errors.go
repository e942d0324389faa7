package caravan

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoEnvironmentSelected indicates an operation that needs a current
// environment was called before UseEnv.
var ErrNoEnvironmentSelected = errors.New("no environment selected")

// PackageUnregisteredError indicates the requested package name is
// absent from the registry entirely.
type PackageUnregisteredError struct {
	// Name is the package that was requested.
	Name string
}

func (e *PackageUnregisteredError) Error() string {
	return fmt.Sprintf("package %q is not in the registry", e.Name)
}

// PackageNotFoundError indicates the package exists in the registry
// but no registered version satisfies the requested constraints.
type PackageNotFoundError struct {
	// Name is the package that was requested.
	Name string

	// Constraint is the constraint list that nothing satisfied,
	// rendered in requirement syntax (">=1.0,<2.0").
	Constraint string
}

func (e *PackageNotFoundError) Error() string {
	if e.Constraint == "" {
		return fmt.Sprintf("no registered version of %q", e.Name)
	}
	return fmt.Sprintf("no registered version of %q satisfies %s", e.Name, e.Constraint)
}

// VersionConflictError indicates two requirements in one resolution
// (or a requirement against an already-installed version) demand
// incompatible versions of the same package.
type VersionConflictError struct {
	// Name is the conflicted package.
	Name string

	// Constraint is the constraint list that the existing choice
	// failed to satisfy, rendered in requirement syntax.
	Constraint string

	// Existing is the version already chosen or installed.
	Existing string

	// RequiredBy identifies the requirement's origin ("direct
	// install" or "dependency of parent==version").
	RequiredBy string
}

func (e *VersionConflictError) Error() string {
	msg := fmt.Sprintf("version conflict on %q: %s%s required, but %s is already selected",
		e.Name, e.Name, e.Constraint, e.Existing)
	if e.RequiredBy != "" {
		msg += " (" + e.RequiredBy + ")"
	}
	return msg
}

// CyclicDependencyError indicates a dependency cycle was detected
// during installation.
type CyclicDependencyError struct {
	// Package is the package whose re-entry closed the cycle.
	Package string

	// Cycle is the dependency path that forms the cycle, ending with
	// the repeated package.
	Cycle []string
}

func (e *CyclicDependencyError) Error() string {
	if len(e.Cycle) == 0 {
		return fmt.Sprintf("cyclic dependency on %q", e.Package)
	}
	return fmt.Sprintf("cyclic dependency on %q: %s", e.Package, strings.Join(e.Cycle, " -> "))
}

// EnvironmentNotFoundError indicates an unknown environment name.
type EnvironmentNotFoundError struct {
	// Name is the environment that was requested.
	Name string
}

func (e *EnvironmentNotFoundError) Error() string {
	return fmt.Sprintf("environment %q does not exist", e.Name)
}

// DependentExistsError indicates a removal was blocked because other
// installed packages still depend on the target.
type DependentExistsError struct {
	// Name is the package whose removal was blocked.
	Name string

	// Dependents lists the installed packages that still declare a
	// dependency on Name.
	Dependents []string
}

func (e *DependentExistsError) Error() string {
	return fmt.Sprintf("cannot remove %q: it is a dependency of %s",
		e.Name, strings.Join(e.Dependents, ", "))
}

// PackageNotInstalledError indicates a query or removal referenced a
// package that is not installed in the current environment.
type PackageNotInstalledError struct {
	// Name is the package that was referenced.
	Name string
}

func (e *PackageNotInstalledError) Error() string {
	return fmt.Sprintf("package %q is not installed", e.Name)
}
