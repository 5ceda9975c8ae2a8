package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the optional per-project tool configuration file, looked up
// in the build root.
const FileName = "vivo.yml"

// Defaults applied when no configuration file is present.
const (
	DefaultCommand          = "vivado"
	DefaultRoutingDirective = "Explore"
)

// Config represents the top-level vivo.yml configuration
type Config struct {
	// Command is the vendor tool executable to invoke.
	Command string `yaml:"command,omitempty"`

	// DefaultPart is used when no --part flag is given.
	DefaultPart string `yaml:"default_part,omitempty"`

	// RoutingDirective is passed to the routing stage.
	RoutingDirective string `yaml:"routing_directive,omitempty"`

	// Generator is the interpreter used to run model-generation scripts.
	Generator string `yaml:"generator,omitempty"`
}

// Validate fills defaults and rejects values the flow cannot work with
func (c *Config) Validate() error {
	if c.Command == "" {
		c.Command = DefaultCommand
	}
	if c.RoutingDirective == "" {
		c.RoutingDirective = DefaultRoutingDirective
	}
	if c.Generator == "" {
		c.Generator = "python3"
	}
	return nil
}

// Default returns the configuration used when no vivo.yml exists
func Default() *Config {
	c := &Config{}
	c.Validate()
	return c
}

// Load reads and validates vivo.yml from the specified path. A missing file
// is not an error; defaults are returned instead.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}
