package config

import "fmt"

// CompilerProfile is one solc version with its optimizer settings
type CompilerProfile struct {
	Version          string `json:"version" yaml:"version"`
	OptimizerEnabled bool   `json:"optimizerEnabled" yaml:"optimizerEnabled"`
	OptimizerRuns    int    `json:"optimizerRuns" yaml:"optimizerRuns"`
}

func (c CompilerProfile) String() string {
	if !c.OptimizerEnabled {
		return c.Version
	}
	return fmt.Sprintf("%s (optimizer, %d runs)", c.Version, c.OptimizerRuns)
}

// CompilerOverride pins a single source file to a compiler profile
type CompilerOverride struct {
	SourcePath string          `json:"sourcePath" yaml:"sourcePath"` // relative to the project root
	Profile    CompilerProfile `json:"profile" yaml:"profile"`
}
