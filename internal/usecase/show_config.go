package usecase

import (
	"context"

	"github.com/trebuchet-org/chaincfg/internal/domain/config"
)

// ShowConfigResult contains the result of showing configuration
type ShowConfigResult struct {
	ProjectRoot    string
	ConfigSource   string
	DefaultNetwork string
	Network        config.NetworkProfile
	Compilers      []config.CompilerProfile
	Overrides      []config.CompilerOverride
	Paths          config.PathConfig // absolute
	Verification   config.VerificationConfig
	TestRunner     config.TestRunnerConfig
}

// ShowConfig is a use case for showing the loaded configuration
type ShowConfig struct {
	cfg *config.RuntimeConfig
}

// NewShowConfig creates a new ShowConfig use case
func NewShowConfig(cfg *config.RuntimeConfig) *ShowConfig {
	return &ShowConfig{
		cfg: cfg,
	}
}

// Run executes the show config use case
func (uc *ShowConfig) Run(ctx context.Context) (*ShowConfigResult, error) {
	project := uc.cfg.Project
	network, _ := project.Networks.Get(project.Selected.Name)

	return &ShowConfigResult{
		ProjectRoot:    uc.cfg.ProjectRoot,
		ConfigSource:   uc.cfg.ConfigSource,
		DefaultNetwork: project.DefaultNetwork,
		Network:        network,
		Compilers:      project.CompilerList(),
		Overrides:      append([]config.CompilerOverride(nil), project.Overrides...),
		Paths:          uc.cfg.ResolvedPaths(),
		Verification:   project.Verification,
		TestRunner:     project.TestRunner,
	}, nil
}
