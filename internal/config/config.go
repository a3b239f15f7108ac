// Package config loads process configuration for cmd/relquery. It follows
// pkg/schema/loader.go's own use of gopkg.in/yaml.v3 rather than introducing
// a second configuration library for a single small struct.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level process configuration.
type Config struct {
	Parser ParserConfig `yaml:"parser"`
	Output OutputConfig `yaml:"output"`
}

// ParserConfig selects the dialect the scanner/parser operate under.
type ParserConfig struct {
	Dialect string `yaml:"dialect"`
}

// OutputConfig controls how cmd/relquery renders a plan.
type OutputConfig struct {
	Format     string `yaml:"format"`      // "text" or "json"
	PrettyJSON bool   `yaml:"pretty_json"`
}

// DefaultConfig is used when no -config flag is given, or when the given
// file can't be loaded.
func DefaultConfig() *Config {
	return &Config{
		Parser: ParserConfig{Dialect: "ansi"},
		Output: OutputConfig{Format: "text", PrettyJSON: true},
	}
}

// LoadConfig reads and parses a YAML config file. An empty path returns
// DefaultConfig without touching the filesystem.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}
