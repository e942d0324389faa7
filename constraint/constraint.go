// Package constraint implements the requirement grammar used to ask
// for packages: a package name followed by a comma-separated list of
// operator/version constraints, e.g. "web_framework>=1.0,<3.0".
//
// Supported operators are ==, >=, <=, > and <. A requirement with no
// constraints ("web_framework") matches any version. Constraints in a
// list are AND-ed together.
package constraint

import (
	"fmt"
	"strings"

	"github.com/caravan-pm/caravan/version"
)

// Op is a comparison operator in a version constraint.
type Op string

const (
	OpEq Op = "=="
	OpGE Op = ">="
	OpLE Op = "<="
	OpGT Op = ">"
	OpLT Op = "<"
)

// operators lists the supported operators longest-first so that ">="
// is never misread as ">" followed by "=1.0".
var operators = []Op{OpEq, OpGE, OpLE, OpGT, OpLT}

// Constraint pairs an operator with a version string.
type Constraint struct {
	Op      Op
	Version string
}

func (c Constraint) String() string {
	return string(c.Op) + c.Version
}

// Requirement is a package name plus the constraints its versions
// must satisfy.
type Requirement struct {
	Name        string
	Constraints []Constraint
}

// String renders the requirement back into its spec form.
func (r Requirement) String() string {
	var sb strings.Builder
	sb.WriteString(r.Name)
	for i, c := range r.Constraints {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(c.String())
	}
	return sb.String()
}

// ParseError is returned when a requirement or constraint string
// cannot be parsed.
type ParseError struct {
	// Spec is the input that failed to parse.
	Spec string

	// Message describes what went wrong.
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid requirement %q: %s", e.Spec, e.Message)
}

// ParseRequirement parses a requirement string into a name and its
// constraints. The name is the leading run of letters, digits,
// underscores and hyphens; the remainder must be a well-formed
// constraint list or empty.
func ParseRequirement(spec string) (Requirement, error) {
	i := 0
	for i < len(spec) && isNameByte(spec[i]) {
		i++
	}
	name := spec[:i]
	if name == "" {
		return Requirement{}, &ParseError{Spec: spec, Message: "missing package name"}
	}

	rest := spec[i:]
	if rest == "" {
		return Requirement{Name: name}, nil
	}

	constraints, err := parseList(spec, rest)
	if err != nil {
		return Requirement{}, err
	}
	return Requirement{Name: name, Constraints: constraints}, nil
}

// ParseConstraints parses a standalone constraint list such as
// ">=1.0,<2.0". An empty string yields an empty list (matches any
// version).
func ParseConstraints(spec string) ([]Constraint, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, nil
	}
	return parseList(spec, spec)
}

// parseList parses a comma-separated constraint list. full is the
// original input, kept for error messages.
func parseList(full, list string) ([]Constraint, error) {
	parts := strings.Split(list, ",")
	constraints := make([]Constraint, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, &ParseError{Spec: full, Message: "empty constraint"}
		}

		var op Op
		for _, candidate := range operators {
			if strings.HasPrefix(part, string(candidate)) {
				op = candidate
				break
			}
		}
		if op == "" {
			return nil, &ParseError{Spec: full, Message: fmt.Sprintf("constraint %q has no operator", part)}
		}

		ver := strings.TrimSpace(part[len(op):])
		if ver == "" {
			return nil, &ParseError{Spec: full, Message: fmt.Sprintf("constraint %q has no version", part)}
		}
		if _, err := version.Parse(ver); err != nil {
			return nil, &ParseError{Spec: full, Message: err.Error()}
		}

		constraints = append(constraints, Constraint{Op: op, Version: ver})
	}
	return constraints, nil
}

// Match reports whether a version satisfies every constraint in the
// list. An empty list matches any version.
func Match(ver string, constraints []Constraint) (bool, error) {
	for _, c := range constraints {
		cmp, err := version.Compare(ver, c.Version)
		if err != nil {
			return false, err
		}
		if !opHolds(c.Op, cmp) {
			return false, nil
		}
	}
	return true, nil
}

func opHolds(op Op, cmp int) bool {
	switch op {
	case OpEq:
		return cmp == 0
	case OpGE:
		return cmp >= 0
	case OpLE:
		return cmp <= 0
	case OpGT:
		return cmp > 0
	case OpLT:
		return cmp < 0
	}
	return false
}

func isNameByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '_', b == '-':
		return true
	}
	return false
}
