package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Manifest is the project file (`ferrite.yaml`) naming the root source
// file and the two architectural constants for a build, grounded in the
// teacher's and onflow/cadence's shared indirect dependency on
// goccy/go-yaml (the teacher pulls it in for its own tooling; here it
// gets a direct, exercised use).
type Manifest struct {
	Root           string `yaml:"root"`
	AddressSize    int    `yaml:"address_size"`
	DefaultIntSize int    `yaml:"default_int_size"`
}

// LoadManifest reads and parses a ferrite.yaml project file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading manifest %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("config: parsing manifest %s: %w", path, err)
	}
	if m.AddressSize == 0 {
		m.AddressSize = 64
	}
	if m.DefaultIntSize == 0 {
		m.DefaultIntSize = 32
	}
	return &m, nil
}

// Config extracts the architectural-constant pair from the manifest.
func (m *Manifest) Config() *Config {
	return &Config{AddressSize: m.AddressSize, DefaultIntSize: m.DefaultIntSize}
}
