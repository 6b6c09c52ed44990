package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfig holds project-level settings loaded from codegraph.yml.
type ProjectConfig struct {
	StorePath     string   `yaml:"storePath,omitempty"`     // kuzu database path; empty selects the in-memory store
	Workers       int      `yaml:"workers,omitempty"`       // parallel file parses during indexing
	MaxIterations int      `yaml:"maxIterations,omitempty"` // agent navigation bound
	ExcludeDirs   []string `yaml:"excludeDirs,omitempty"`
	MCPAddr       string   `yaml:"mcpAddr,omitempty"`
	Verbose       bool     `yaml:"verbose,omitempty"`
}

// Load attempts to read codegraph.yml or codegraph.yaml from the given
// directory. Returns a zero-value config (not an error) if no config file
// exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"codegraph.yml", "codegraph.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}
