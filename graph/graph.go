// Package graph builds dependency graphs over an environment's
// installed packages. It supports bidirectional traversal
// (dependencies and dependents) and produces explanations of why a
// package is present, as chains from directly-installed roots down to
// the package in question.
package graph

import "sort"

// Package is one installed package fed into Build.
type Package struct {
	// Name is the package name.
	Name string

	// Version is the installed version.
	Version string

	// Reason is the recorded provenance ("direct install" or
	// "dependency of parent==version").
	Reason string

	// Dependencies are the names of installed packages this one
	// depends on.
	Dependencies []string
}

// Node is a package in the built graph with edges in both directions.
type Node struct {
	// Name is the package name.
	Name string

	// Version is the installed version.
	Version string

	// Reason is the recorded provenance.
	Reason string

	// Dependencies are direct dependencies, sorted.
	Dependencies []string

	// Dependents are packages that directly depend on this one,
	// sorted (reverse edges).
	Dependents []string
}

// Graph is a dependency graph over one environment.
type Graph struct {
	// Nodes maps package name to its node.
	Nodes map[string]*Node
}

// Build constructs a graph from installed packages, filling in the
// reverse (dependent) edges. Dependency references to packages outside
// the input set are dropped.
func Build(pkgs []Package) *Graph {
	g := &Graph{Nodes: make(map[string]*Node, len(pkgs))}

	for _, p := range pkgs {
		g.Nodes[p.Name] = &Node{
			Name:    p.Name,
			Version: p.Version,
			Reason:  p.Reason,
		}
	}

	for _, p := range pkgs {
		node := g.Nodes[p.Name]
		seen := make(map[string]bool, len(p.Dependencies))
		for _, dep := range p.Dependencies {
			target, ok := g.Nodes[dep]
			if !ok || seen[dep] || dep == p.Name {
				continue
			}
			seen[dep] = true
			node.Dependencies = append(node.Dependencies, dep)
			target.Dependents = append(target.Dependents, p.Name)
		}
	}

	for _, node := range g.Nodes {
		sort.Strings(node.Dependencies)
		sort.Strings(node.Dependents)
	}
	return g
}

// Dependents returns the packages that directly depend on name.
func (g *Graph) Dependents(name string) []string {
	node, ok := g.Nodes[name]
	if !ok {
		return nil
	}
	return append([]string(nil), node.Dependents...)
}

// Roots returns the packages nothing else depends on, sorted. These
// are the entry points of every dependency chain.
func (g *Graph) Roots() []string {
	var roots []string
	for name, node := range g.Nodes {
		if len(node.Dependents) == 0 {
			roots = append(roots, name)
		}
	}
	sort.Strings(roots)
	return roots
}

// Explanation describes why a package is installed.
type Explanation struct {
	// Name is the explained package.
	Name string

	// Reason is its recorded provenance.
	Reason string

	// Chains are the dependency paths from roots to the package, each
	// a sequence of package names ending in Name.
	Chains [][]string
}

// Explain returns the provenance and every dependency chain leading to
// the package, or nil if the package is not in the graph. Chains are
// found by walking dependent edges upward; cycles are cut by never
// revisiting a package within one chain.
func (g *Graph) Explain(name string) *Explanation {
	node, ok := g.Nodes[name]
	if !ok {
		return nil
	}

	exp := &Explanation{Name: name, Reason: node.Reason}
	g.ascend(name, []string{name}, map[string]bool{name: true}, &exp.Chains)

	sort.Slice(exp.Chains, func(i, j int) bool {
		return chainLess(exp.Chains[i], exp.Chains[j])
	})
	return exp
}

// ascend extends the chain upward through dependents until it reaches
// a root, collecting each completed root-to-target chain.
func (g *Graph) ascend(name string, chain []string, visited map[string]bool, out *[][]string) {
	node := g.Nodes[name]
	extended := false
	for _, dependent := range node.Dependents {
		if visited[dependent] {
			continue
		}
		extended = true
		visited[dependent] = true
		g.ascend(dependent, append([]string{dependent}, chain...), visited, out)
		delete(visited, dependent)
	}
	if !extended {
		*out = append(*out, append([]string(nil), chain...))
	}
}

func chainLess(a, b []string) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
