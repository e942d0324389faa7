package caravan

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// registrySnapshot is the on-disk YAML shape of a registry:
//
//	packages:
//	  - name: web_framework
//	    version: "1.5"
//	    dependencies:
//	      - "http_core>=1.0,<2.0"
//	  - name: http_core
//	    version: "1.2"
type registrySnapshot struct {
	Packages []registrySnapshotEntry `yaml:"packages"`
}

type registrySnapshotEntry struct {
	Name         string   `yaml:"name"`
	Version      string   `yaml:"version"`
	Dependencies []string `yaml:"dependencies"`
}

// LoadRegistryFile reads a YAML registry snapshot and returns a
// populated registry. Every entry is validated the same way explicit
// registration is; the first invalid entry aborts the load.
func LoadRegistryFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry snapshot: %w", err)
	}
	return ParseRegistry(data)
}

// ParseRegistry parses YAML registry snapshot data.
func ParseRegistry(data []byte) (*Registry, error) {
	var snap registrySnapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse registry snapshot: %w", err)
	}

	reg := NewRegistry()
	for _, entry := range snap.Packages {
		if entry.Name == "" {
			return nil, fmt.Errorf("registry snapshot: entry with empty package name")
		}
		if err := reg.Add(entry.Name, entry.Version, entry.Dependencies); err != nil {
			return nil, fmt.Errorf("registry snapshot entry %s@%s: %w", entry.Name, entry.Version, err)
		}
	}
	return reg, nil
}
