// Package config describes how a match table is sized: its entry capacity
// and the memory budget it is expected to fit inside. It says nothing about
// how entries are persisted — the engine has no persistence layer.
package config

import (
	"fmt"
	"os"

	"github.com/c2h5oh/datasize"
	"gopkg.in/yaml.v3"
)

// Config is the shape knobs for one table: how many entries it can hold and
// how much memory its dense entry array is allowed to occupy.
type Config struct {
	// Size is the table's fixed capacity, passed to NewExactUnit /
	// NewLPMUnit / NewTernaryUnit as-is.
	Size uint32 `yaml:"size"`

	// MemoryBudget is the maximum footprint the table's dense entry array
	// may occupy; a control plane compares this against Footprint() before
	// constructing a table, rather than the table enforcing it itself.
	MemoryBudget datasize.ByteSize `yaml:"memory_budget"`
}

// DefaultConfig returns the configuration used when no table-specific
// sizing has been supplied.
func DefaultConfig() *Config {
	return &Config{
		Size:         1024,
		MemoryBudget: 64 * datasize.MB,
	}
}

// Fits reports whether footprint (in bytes) stays within c's memory budget.
func (c *Config) Fits(footprintBytes uint64) bool {
	return footprintBytes <= uint64(c.MemoryBudget)
}

// LoadConfig loads a table's sizing configuration from a YAML file at path,
// starting from DefaultConfig so an omitted field keeps its default.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML configuration: %w", err)
	}
	return cfg, nil
}
