package config

// Declaration is the unresolved toolchain configuration. String values may
// be ${VAR} references that the loader resolves from the environment.
type Declaration struct {
	DefaultNetwork string                `toml:"default_network"`
	Networks       []NetworkDeclaration  `toml:"networks"`
	Compilers      []CompilerDeclaration `toml:"compilers"`
	Overrides      []OverrideDeclaration `toml:"overrides"`
	Paths          PathConfig            `toml:"paths"`
	Verification   VerificationDecl      `toml:"verification"`
	TestRunner     TestRunnerDecl        `toml:"test_runner"`
}

// NetworkDeclaration is one declared network. Timeouts are in milliseconds.
type NetworkDeclaration struct {
	Name          string           `toml:"name"`
	URL           string           `toml:"url"`
	Accounts      []string         `toml:"accounts"`
	ChainID       uint64           `toml:"chain_id"`
	BlockGasLimit uint64           `toml:"block_gas_limit"`
	Gas           string           `toml:"gas"`       // "auto" or an integer
	GasPrice      string           `toml:"gas_price"` // "auto" or wei
	TimeoutMs     int64            `toml:"timeout"`
	Forking       *ForkDeclaration `toml:"forking"`
	Local         bool             `toml:"local"`
}

// ForkDeclaration declares the remote state a local network forks from
type ForkDeclaration struct {
	URL         string `toml:"url"`
	BlockNumber uint64 `toml:"block_number"` // 0 forks at latest
	TimeoutMs   int64  `toml:"timeout"`
}

// CompilerDeclaration declares one compiler version
type CompilerDeclaration struct {
	Version   string          `toml:"version"`
	Optimizer OptimizerConfig `toml:"optimizer"`
}

// OptimizerConfig mirrors solc's optimizer settings
type OptimizerConfig struct {
	Enabled bool `toml:"enabled"`
	Runs    int  `toml:"runs"`
}

// OverrideDeclaration pins a source file to a compiler
type OverrideDeclaration struct {
	Source    string          `toml:"source"`
	Version   string          `toml:"version"`
	Optimizer OptimizerConfig `toml:"optimizer"`
}

// VerificationDecl declares the explorer API key
type VerificationDecl struct {
	APIKey string `toml:"api_key"`
}

// TestRunnerDecl declares the test timeout in milliseconds
type TestRunnerDecl struct {
	TimeoutMs int64 `toml:"timeout"`
}
