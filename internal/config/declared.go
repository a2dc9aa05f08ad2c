package config

import (
	"time"

	"github.com/trebuchet-org/chaincfg/internal/domain/config"
)

// Environment variables referenced by the default declaration
const (
	EnvExplorerAPIKey = "POLYGON_API_KEY"
	EnvMaticURL       = "MATIC_URL"
	EnvSecretKey      = "SECRET_KEY"
	EnvRinkebyURL     = "RINKEBY_URL"
)

const (
	DefaultNetworkName    = "hardhat"
	DefaultNetworkTimeout = 20 * time.Second
	DefaultTestTimeout    = 40 * time.Second
	SimulatedChainID      = 31337
)

// DefaultPaths is the fixed project layout
var DefaultPaths = config.PathConfig{
	Sources:   "./contracts",
	Tests:     "./test",
	Cache:     "./cache",
	Artifacts: "./artifacts",
}

func ref(name string) string { return "${" + name + "}" }

// DefaultDeclaration returns the project's built-in toolchain declaration
func DefaultDeclaration() config.Declaration {
	optimized := config.OptimizerConfig{Enabled: true, Runs: 200}

	return config.Declaration{
		DefaultNetwork: DefaultNetworkName,
		Networks: []config.NetworkDeclaration{
			{
				// Simulated network mirroring the primary network at its latest block.
				// Fork initialisation is slow, hence the long timeouts.
				Name: "hardhat",
				Forking: &config.ForkDeclaration{
					URL:       ref(EnvMaticURL),
					TimeoutMs: 12_000_000,
				},
				BlockGasLimit: 20_000_000,
				TimeoutMs:     120_000,
				Gas:           "auto",
				Local:         true,
			},
			{
				Name:      "localhost",
				URL:       "http://127.0.0.1:8545",
				TimeoutMs: 16_000_000,
				Local:     true,
			},
			{
				Name:      "matic",
				URL:       ref(EnvMaticURL),
				Accounts:  []string{ref(EnvSecretKey)},
				TimeoutMs: 90_000,
				Gas:       "auto",
			},
			{
				Name:     "rinkeby",
				URL:      ref(EnvRinkebyURL),
				Accounts: []string{ref(EnvSecretKey)},
			},
		},
		Compilers: []config.CompilerDeclaration{
			{Version: "0.8.10", Optimizer: optimized},
			{Version: "0.7.0", Optimizer: optimized},
		},
		Paths:        DefaultPaths,
		Verification: config.VerificationDecl{APIKey: ref(EnvExplorerAPIKey)},
		TestRunner:   config.TestRunnerDecl{TimeoutMs: 40_000},
	}
}
