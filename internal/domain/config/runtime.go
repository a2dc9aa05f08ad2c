package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string

	// Context settings
	NetworkName string // Selected network profile

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool // Output in JSON format
	Timeout        time.Duration

	// Config source tracking
	ConfigSource string // "toolchain.toml" or "defaults"

	// Resolved configuration
	Project *ProjectConfig
}

// ResolvedPaths returns the project layout made absolute against ProjectRoot
func (c *RuntimeConfig) ResolvedPaths() PathConfig {
	return c.Project.Paths.Resolve(c.ProjectRoot)
}
