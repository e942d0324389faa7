// Package lockfile implements flat name → version snapshots of a
// resolved environment, with deterministic JSON serialization so that
// identical environments always produce byte-identical lockfiles.
//
// The on-disk format is a single JSON object:
//
//	{
//	  "json_parser": "2.0",
//	  "web_framework": "1.5"
//	}
package lockfile

import "sort"

// Lockfile is a snapshot of an environment's resolved versions: one
// pinned version per package name.
type Lockfile struct {
	// Pins maps package name to the pinned version string.
	Pins map[string]string
}

// New returns an empty lockfile.
func New() *Lockfile {
	return &Lockfile{Pins: make(map[string]string)}
}

// Set pins a package to a version, overwriting any existing pin.
func (l *Lockfile) Set(name, version string) {
	if l.Pins == nil {
		l.Pins = make(map[string]string)
	}
	l.Pins[name] = version
}

// Get returns the pinned version of a package.
func (l *Lockfile) Get(name string) (string, bool) {
	v, ok := l.Pins[name]
	return v, ok
}

// Len returns the number of pinned packages.
func (l *Lockfile) Len() int {
	return len(l.Pins)
}

// Names returns the pinned package names in sorted order, giving
// callers a deterministic replay order.
func (l *Lockfile) Names() []string {
	names := make([]string, 0, len(l.Pins))
	for name := range l.Pins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Diff describes the differences between two lockfiles.
type Diff struct {
	// Added lists packages pinned in the new lockfile but not the old.
	Added []string

	// Removed lists packages pinned in the old lockfile but not the new.
	Removed []string

	// Changed lists packages pinned at different versions.
	Changed []VersionChange
}

// VersionChange records a pin change for one package.
type VersionChange struct {
	Name       string
	OldVersion string
	NewVersion string
}

// IsEmpty reports whether the two lockfiles were identical.
func (d *Diff) IsEmpty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// Compare returns the differences between two lockfiles, with all
// slices sorted for deterministic output.
func Compare(old, new *Lockfile) *Diff {
	diff := &Diff{}

	remaining := make(map[string]string, len(old.Pins))
	for name, ver := range old.Pins {
		remaining[name] = ver
	}

	for name, newVer := range new.Pins {
		if oldVer, ok := remaining[name]; ok {
			if oldVer != newVer {
				diff.Changed = append(diff.Changed, VersionChange{
					Name:       name,
					OldVersion: oldVer,
					NewVersion: newVer,
				})
			}
			delete(remaining, name)
		} else {
			diff.Added = append(diff.Added, name)
		}
	}
	for name := range remaining {
		diff.Removed = append(diff.Removed, name)
	}

	sort.Strings(diff.Added)
	sort.Strings(diff.Removed)
	sort.Slice(diff.Changed, func(i, j int) bool {
		return diff.Changed[i].Name < diff.Changed[j].Name
	})
	return diff
}
