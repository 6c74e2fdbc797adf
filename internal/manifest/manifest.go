// Package manifest parses the program manifest that names a program, its
// network and its external-program dependencies (spec §6.1).
//
// Grounded directly on the teacher's internal/ext.Config: a top-level
// struct with yaml tags, unmarshaled with gopkg.in/yaml.v3 via a single
// ParseManifest entry point that never fails on an unrecognized field
// value — only on malformed YAML itself. Semantic validation (is this
// network actually supported) is left to internal/typecheck, mirroring
// spec §6.1's "accepted by the CST layer, rejected by the semantic layer"
// split; the manifest parser plays the CST layer's role here.
package manifest

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Manifest is the top-level program manifest.
type Manifest struct {
	Program      string       `yaml:"program"`
	Network      string       `yaml:"network"`
	Dependencies []Dependency `yaml:"dependencies,omitempty"`
}

// Dependency names one external program this one imports (spec §3.1's
// program-name-plus-network-suffix addressing, reused at the manifest
// level for declared dependencies).
type Dependency struct {
	Program string `yaml:"program"`
	Network string `yaml:"network"`
}

// ParseManifest unmarshals data into a Manifest. It reports only
// malformed YAML; an unsupported Network value parses cleanly and is left
// for the semantic layer to reject.
func ParseManifest(data []byte, path string) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &m, nil
}
