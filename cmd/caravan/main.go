// Command caravan resolves package requirements against a registry
// snapshot and works with lockfiles.
//
// Usage:
//
//	caravan resolve --registry registry.yaml "web_framework>=1.0,<3.0"
//	caravan find --registry registry.yaml web_framework ">=1.0"
//	caravan verify --registry registry.yaml prod.lock.json
//	caravan diff old.lock.json new.lock.json
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "caravan:", err)
		os.Exit(1)
	}
}
