package config

import (
	"path/filepath"
	"slices"
	"time"
)

// PathConfig holds the project directory layout. Each entry is independent.
type PathConfig struct {
	Sources   string `json:"sources" yaml:"sources" toml:"sources"`
	Tests     string `json:"tests" yaml:"tests" toml:"tests"`
	Cache     string `json:"cache" yaml:"cache" toml:"cache"`
	Artifacts string `json:"artifacts" yaml:"artifacts" toml:"artifacts"`
}

// Resolve returns the layout with every entry made absolute against root
func (p PathConfig) Resolve(root string) PathConfig {
	return PathConfig{
		Sources:   resolvePath(root, p.Sources),
		Tests:     resolvePath(root, p.Tests),
		Cache:     resolvePath(root, p.Cache),
		Artifacts: resolvePath(root, p.Artifacts),
	}
}

func resolvePath(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

// VerificationConfig configures the block-explorer verification service
type VerificationConfig struct {
	APIKey string `json:"apiKey,omitempty" yaml:"apiKey,omitempty"`
}

// Configured reports whether an API key is available
func (v VerificationConfig) Configured() bool {
	return v.APIKey != ""
}

// TestRunnerConfig configures the external test runner
type TestRunnerConfig struct {
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// ProjectConfig is the loaded, read-only toolchain configuration.
// It is built once per invocation by the loader.
type ProjectConfig struct {
	DefaultNetwork string
	Selected       NetworkProfile
	Networks       NetworkSet
	// Unresolved holds the reason each non-selected profile could not be resolved
	Unresolved   map[string]error
	Compilers    []CompilerProfile
	Overrides    []CompilerOverride
	Paths        PathConfig
	Verification VerificationConfig
	TestRunner   TestRunnerConfig
}

// CompilerList returns a copy of the declared compiler profiles
func (p *ProjectConfig) CompilerList() []CompilerProfile {
	return slices.Clone(p.Compilers)
}
