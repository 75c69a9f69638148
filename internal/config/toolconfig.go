package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// ToolConfig is the user-level CLI preferences file (`~/.ferritec.toml`):
// things that change how ferritec reports results, never how it
// compiles. Kept separate from Manifest (a per-project YAML file) so
// switching terminal color preferences never touches a checked-in
// project file.
type ToolConfig struct {
	Color      bool   `toml:"color"`
	Verbose    bool   `toml:"verbose"`
	DumpIRMode string `toml:"dump_ir_mode"` // "", "json", or "pretty"
}

// LoadToolConfig reads a TOML tool-config file. A missing file is not an
// error; it just yields the zero-value ToolConfig.
func LoadToolConfig(path string) (*ToolConfig, error) {
	var tc ToolConfig
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &tc, nil
	}
	if _, err := toml.DecodeFile(path, &tc); err != nil {
		return nil, fmt.Errorf("config: parsing tool config %s: %w", path, err)
	}
	return &tc, nil
}
