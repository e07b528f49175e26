// Package config holds pcbmask configuration.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all pcbmask configuration.
type Config struct {
	// Normalizer is the external SVG normalizer invocation.
	Normalizer NormalizerConfig `yaml:"normalizer"`

	// Output controls serialization of the results.
	Output OutputConfig `yaml:"output"`
}

// NormalizerConfig configures the external normalizer subprocess.
type NormalizerConfig struct {
	Bin  string   `yaml:"bin"`
	Args []string `yaml:"args"`
}

// OutputConfig configures output serialization.
type OutputConfig struct {
	// Indent is the number of spaces per nesting level; 0 writes the
	// tree as-is.
	Indent int `yaml:"indent"`

	// Clean prunes editor artifacts (empty groups, highlight container,
	// metadata) before saving.
	Clean bool `yaml:"clean"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Normalizer: NormalizerConfig{
			Bin:  "inkscape",
			Args: []string{"--export-overwrite", "--actions=export-do"},
		},
		Output: OutputConfig{
			Indent: 2,
			Clean:  false,
		},
	}
}

// Load reads the yaml config at path on top of the defaults. A missing file
// (or an empty path) yields the defaults. Environment variables override
// whatever was loaded.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides lets the environment take precedence over file values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PCBMASK_INKSCAPE"); v != "" {
		c.Normalizer.Bin = v
	}
	if v := os.Getenv("PCBMASK_INKSCAPE_ARGS"); v != "" {
		c.Normalizer.Args = strings.Fields(v)
	}
}
