package config

import (
	"errors"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/chaincfg/internal/domain"
	"github.com/trebuchet-org/chaincfg/internal/domain/config"
)

const (
	testMaticURL   = "https://polygon-rpc.example/v1/abc"
	testRinkebyURL = "https://rinkeby.example/v3/def"
	testSecretKey  = "0x4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"
)

func fullEnv() MapEnv {
	return MapEnv{
		EnvMaticURL:       testMaticURL,
		EnvRinkebyURL:     testRinkebyURL,
		EnvSecretKey:      testSecretKey,
		EnvExplorerAPIKey: "explorer-key",
	}
}

func TestLoadDefaultDeclaration(t *testing.T) {
	cfg, err := Load(DefaultDeclaration(), fullEnv(), "")
	require.NoError(t, err)

	assert.Equal(t, "hardhat", cfg.DefaultNetwork)
	assert.Equal(t, "hardhat", cfg.Selected.Name)
	assert.Equal(t, []string{"hardhat", "localhost", "matic", "rinkeby"}, cfg.Networks.Names())
	assert.Empty(t, cfg.Unresolved)

	t.Run("forking network", func(t *testing.T) {
		hh := cfg.Selected
		require.NotNil(t, hh.Forking)
		assert.Equal(t, testMaticURL, hh.Forking.URL)
		assert.True(t, hh.Forking.AtLatest())
		assert.Equal(t, 12_000_000*time.Millisecond, hh.Forking.Timeout)
		require.NotNil(t, hh.GasLimit)
		assert.Equal(t, uint64(20_000_000), *hh.GasLimit)
		assert.Equal(t, 120*time.Second, hh.Timeout)
		assert.True(t, hh.Gas.Auto)
		assert.Equal(t, config.GasPricingAuto, hh.GasPricing)
		assert.Equal(t, uint64(SimulatedChainID), hh.ChainID)
		assert.True(t, hh.ReadOnly())
		assert.True(t, hh.Simulated())
	})

	t.Run("localhost", func(t *testing.T) {
		lh, ok := cfg.Networks.Get("localhost")
		require.True(t, ok)
		assert.Equal(t, "http://127.0.0.1:8545", lh.URL)
		assert.Equal(t, 16_000_000*time.Millisecond, lh.Timeout)
		assert.True(t, lh.ReadOnly())
	})

	t.Run("rinkeby gets the default timeout", func(t *testing.T) {
		rk, ok := cfg.Networks.Get("rinkeby")
		require.True(t, ok)
		assert.Equal(t, testRinkebyURL, rk.URL)
		assert.Equal(t, DefaultNetworkTimeout, rk.Timeout)
	})

	t.Run("compilers", func(t *testing.T) {
		assert.Equal(t, []string{"0.8.10", "0.7.0"}, lo.Map(cfg.CompilerList(), func(c config.CompilerProfile, _ int) string {
			return c.Version
		}))
		for _, c := range cfg.Compilers {
			assert.True(t, c.OptimizerEnabled)
			assert.Equal(t, 200, c.OptimizerRuns)
		}
		assert.Empty(t, cfg.Overrides)
	})

	assert.Equal(t, DefaultPaths, cfg.Paths)
	assert.Equal(t, "explorer-key", cfg.Verification.APIKey)
	assert.Equal(t, 40*time.Second, cfg.TestRunner.Timeout)
}

func TestLoadForkingNetworkRequiresMaticURL(t *testing.T) {
	t.Run("unset fails", func(t *testing.T) {
		_, err := Load(DefaultDeclaration(), MapEnv{}, "hardhat")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrMissingValue))
		assert.True(t, errors.Is(err, domain.ErrConfiguration))

		var missing *domain.MissingValueError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, EnvMaticURL, missing.Variable)
		assert.Equal(t, "hardhat", missing.Network)
	})

	t.Run("empty counts as unset", func(t *testing.T) {
		_, err := Load(DefaultDeclaration(), MapEnv{EnvMaticURL: ""}, "")
		assert.ErrorIs(t, err, domain.ErrMissingValue)
	})

	t.Run("set succeeds with the exact endpoint", func(t *testing.T) {
		cfg, err := Load(DefaultDeclaration(), MapEnv{EnvMaticURL: "https://rpc.example.org"}, "")
		require.NoError(t, err)
		assert.Equal(t, "https://rpc.example.org", cfg.Selected.Endpoint())
		assert.Equal(t, "https://rpc.example.org", cfg.Selected.Forking.URL)
	})

	t.Run("malformed URL is invalid", func(t *testing.T) {
		_, err := Load(DefaultDeclaration(), MapEnv{EnvMaticURL: "polygon-rpc"}, "")
		assert.ErrorIs(t, err, domain.ErrInvalidValue)
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})
}

func TestLoadMaticRequiresSecretKey(t *testing.T) {
	t.Run("unset fails", func(t *testing.T) {
		_, err := Load(DefaultDeclaration(), MapEnv{EnvMaticURL: testMaticURL}, "matic")
		require.Error(t, err)
		var missing *domain.MissingValueError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, EnvSecretKey, missing.Variable)
		assert.Equal(t, "signing credential", missing.Field)
	})

	t.Run("set yields exactly one credential", func(t *testing.T) {
		cfg, err := Load(DefaultDeclaration(), MapEnv{EnvMaticURL: testMaticURL, EnvSecretKey: testSecretKey}, "matic")
		require.NoError(t, err)
		assert.Equal(t, []string{testSecretKey}, cfg.Selected.Credentials)
		assert.Equal(t, testMaticURL, cfg.Selected.URL)
		assert.Equal(t, 90*time.Second, cfg.Selected.Timeout)
	})
}

func TestLoadRequiredVariablesPerNetwork(t *testing.T) {
	tests := []struct {
		network string
		unset   string
	}{
		{"hardhat", EnvMaticURL},
		{"matic", EnvMaticURL},
		{"matic", EnvSecretKey},
		{"rinkeby", EnvRinkebyURL},
		{"rinkeby", EnvSecretKey},
	}
	for _, tt := range tests {
		t.Run(tt.network+" without "+tt.unset, func(t *testing.T) {
			env := fullEnv()
			delete(env, tt.unset)

			_, err := Load(DefaultDeclaration(), env, tt.network)
			require.Error(t, err)
			var missing *domain.MissingValueError
			require.True(t, errors.As(err, &missing))
			assert.Equal(t, tt.unset, missing.Variable)
		})
	}
}

func TestLoadOnlySelectedNetworkMustResolve(t *testing.T) {
	cfg, err := Load(DefaultDeclaration(), MapEnv{}, "localhost")
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Selected.Name)
	assert.Equal(t, []string{"localhost"}, cfg.Networks.Names())
	assert.Len(t, cfg.Unresolved, 3)
	assert.ErrorIs(t, cfg.Unresolved["hardhat"], domain.ErrMissingValue)
	assert.ErrorIs(t, cfg.Unresolved["matic"], domain.ErrMissingValue)
	assert.ErrorIs(t, cfg.Unresolved["rinkeby"], domain.ErrMissingValue)
	assert.False(t, cfg.Verification.Configured())
}

func TestLoadDuplicateProfile(t *testing.T) {
	decl := DefaultDeclaration()
	decl.Networks = append(decl.Networks, config.NetworkDeclaration{Name: "matic", URL: "https://other.example"})

	_, err := Load(decl, fullEnv(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicateProfile)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestLoadInvalidCompilerVersion(t *testing.T) {
	for _, v := range []string{"0.8", "latest", "v0.8.10", "0.8.10-nightly", "", "0.4.10"} {
		t.Run(v, func(t *testing.T) {
			decl := DefaultDeclaration()
			decl.Compilers = append(decl.Compilers, config.CompilerDeclaration{Version: v})

			_, err := Load(decl, fullEnv(), "")
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidVersion)
			assert.ErrorIs(t, err, domain.ErrConfiguration)
		})
	}
}

func TestLoadOverrides(t *testing.T) {
	decl := DefaultDeclaration()
	decl.Overrides = []config.OverrideDeclaration{{
		Source:    "contracts/BalancerPool.sol",
		Version:   "0.7.0",
		Optimizer: config.OptimizerConfig{Enabled: true, Runs: 1000},
	}}

	cfg, err := Load(decl, fullEnv(), "")
	require.NoError(t, err)
	require.Len(t, cfg.Overrides, 1)
	assert.Equal(t, "contracts/BalancerPool.sol", cfg.Overrides[0].SourcePath)
	assert.Equal(t, 1000, cfg.Overrides[0].Profile.OptimizerRuns)

	t.Run("bad override version", func(t *testing.T) {
		decl.Overrides[0].Version = "0.7"
		_, err := Load(decl, fullEnv(), "")
		assert.ErrorIs(t, err, domain.ErrInvalidVersion)
	})
}

func TestLoadUnknownNetwork(t *testing.T) {
	_, err := Load(DefaultDeclaration(), fullEnv(), "mainnet")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNetworkNotFound)
	assert.Contains(t, err.Error(), "hardhat, localhost, matic, rinkeby")
}

func TestLoadNetworkValues(t *testing.T) {
	base := func(nd config.NetworkDeclaration) config.Declaration {
		decl := DefaultDeclaration()
		decl.Networks = []config.NetworkDeclaration{nd}
		decl.DefaultNetwork = nd.Name
		return decl
	}

	t.Run("fixed gas and gas price", func(t *testing.T) {
		cfg, err := Load(base(config.NetworkDeclaration{
			Name: "polygon", URL: "https://rpc.example", Gas: "8000000", GasPrice: "1000000000",
		}), MapEnv{}, "")
		require.NoError(t, err)
		assert.Equal(t, config.GasSetting{Value: 8_000_000}, cfg.Selected.Gas)
		assert.Equal(t, config.GasPricingFixed, cfg.Selected.GasPricing)
		assert.Equal(t, uint64(1_000_000_000), cfg.Selected.GasPrice)
	})

	t.Run("bad gas", func(t *testing.T) {
		_, err := Load(base(config.NetworkDeclaration{Name: "polygon", URL: "https://rpc.example", Gas: "lots"}), MapEnv{}, "")
		assert.ErrorIs(t, err, domain.ErrInvalidValue)
	})

	t.Run("remote network without url", func(t *testing.T) {
		_, err := Load(base(config.NetworkDeclaration{Name: "polygon"}), MapEnv{}, "")
		assert.ErrorIs(t, err, domain.ErrInvalidValue)
	})

	t.Run("remote network without accounts is read-only", func(t *testing.T) {
		cfg, err := Load(base(config.NetworkDeclaration{Name: "polygon", URL: "https://rpc.example"}), MapEnv{}, "")
		require.NoError(t, err)
		assert.True(t, cfg.Selected.ReadOnly())
	})

	t.Run("pinned fork block", func(t *testing.T) {
		cfg, err := Load(base(config.NetworkDeclaration{
			Name:    "hardhat",
			Local:   true,
			Forking: &config.ForkDeclaration{URL: "https://rpc.example", BlockNumber: 20024371},
		}), MapEnv{}, "")
		require.NoError(t, err)
		require.NotNil(t, cfg.Selected.Forking.BlockNumber)
		assert.Equal(t, uint64(20024371), *cfg.Selected.Forking.BlockNumber)
		assert.Equal(t, DefaultNetworkTimeout, cfg.Selected.Forking.Timeout)
	})

	t.Run("embedded reference", func(t *testing.T) {
		cfg, err := Load(base(config.NetworkDeclaration{
			Name: "polygon", URL: "https://polygon-mainnet.example/v2/${ALCHEMY_KEY}",
		}), MapEnv{"ALCHEMY_KEY": "k1"}, "")
		require.NoError(t, err)
		assert.Equal(t, "https://polygon-mainnet.example/v2/k1", cfg.Selected.URL)
	})

	t.Run("negative timeout", func(t *testing.T) {
		_, err := Load(base(config.NetworkDeclaration{Name: "polygon", URL: "https://rpc.example", TimeoutMs: -1}), MapEnv{}, "")
		assert.ErrorIs(t, err, domain.ErrInvalidValue)
	})
}

func TestLoadPathsAreIndependent(t *testing.T) {
	decl := DefaultDeclaration()
	decl.Paths = config.PathConfig{Artifacts: "./build"}

	cfg, err := Load(decl, fullEnv(), "")
	require.NoError(t, err)
	assert.Equal(t, "./contracts", cfg.Paths.Sources)
	assert.Equal(t, "./test", cfg.Paths.Tests)
	assert.Equal(t, "./cache", cfg.Paths.Cache)
	assert.Equal(t, "./build", cfg.Paths.Artifacts)
}

func TestLoadDoesNotReadProcessEnvironment(t *testing.T) {
	t.Setenv(EnvMaticURL, "https://from-process.example")

	_, err := Load(DefaultDeclaration(), MapEnv{}, "hardhat")
	assert.ErrorIs(t, err, domain.ErrMissingValue)
}
