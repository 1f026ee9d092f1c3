package persona

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// rosterFile is the on-disk shape of a persona roster.
type rosterFile struct {
	Personas []Persona `yaml:"personas"`
}

// LoadFile reads a YAML roster and builds a registry from it. Personas in the
// file fully replace the built-in roster; deployments that only need to bind
// assistant handles should still list every persona they want served.
func LoadFile(path string) (*Registry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadFile: read roster: %w", err)
	}
	var f rosterFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("LoadFile: unmarshal roster: %w", err)
	}
	reg, err := NewRegistry(f.Personas)
	if err != nil {
		return nil, fmt.Errorf("LoadFile: %w", err)
	}
	return reg, nil
}
