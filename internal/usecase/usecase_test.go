package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/chaincfg/internal/compiler"
	"github.com/trebuchet-org/chaincfg/internal/domain"
	"github.com/trebuchet-org/chaincfg/internal/domain/config"
	"github.com/trebuchet-org/chaincfg/internal/usecase"
)

// MockNetworkProber is a mock implementation of NetworkProber
type MockNetworkProber struct {
	mock.Mock
}

func (m *MockNetworkProber) Probe(ctx context.Context, network config.NetworkProfile) (uint64, error) {
	args := m.Called(ctx, network.Name)
	return args.Get(0).(uint64), args.Error(1)
}

// MockSourceScanner is a mock implementation of SourceScanner
type MockSourceScanner struct {
	mock.Mock
}

func (m *MockSourceScanner) Scan(ctx context.Context, sourcesDir string) ([]usecase.SourceFile, error) {
	args := m.Called(ctx, sourcesDir)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]usecase.SourceFile), args.Error(1)
}

// MockAddressDeriver is a mock implementation of AddressDeriver
type MockAddressDeriver struct {
	mock.Mock
}

func (m *MockAddressDeriver) Derive(credential string) (common.Address, error) {
	args := m.Called(credential)
	return args.Get(0).(common.Address), args.Error(1)
}

// MockProgressSink records progress events
type MockProgressSink struct {
	mu     sync.Mutex
	events []usecase.ProgressEvent
	done   int
}

func (m *MockProgressSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *MockProgressSink) Info(string)  {}
func (m *MockProgressSink) Error(string) {}
func (m *MockProgressSink) Done()        { m.done++ }

func newRuntimeConfig(t *testing.T, selected string, profiles ...config.NetworkProfile) *config.RuntimeConfig {
	t.Helper()

	set, err := config.NewNetworkSet(profiles...)
	require.NoError(t, err)
	sel, ok := set.Get(selected)
	require.True(t, ok, "selected network %s must be in the set", selected)

	return &config.RuntimeConfig{
		ProjectRoot:  "/project",
		NetworkName:  selected,
		Timeout:      5 * time.Minute,
		ConfigSource: "defaults",
		Project: &config.ProjectConfig{
			DefaultNetwork: selected,
			Selected:       sel,
			Networks:       set,
			Unresolved:     map[string]error{},
			Compilers: []config.CompilerProfile{
				{Version: "0.8.10", OptimizerEnabled: true, OptimizerRuns: 200},
				{Version: "0.7.0", OptimizerEnabled: true, OptimizerRuns: 200},
			},
			Paths: config.PathConfig{
				Sources:   "contracts",
				Tests:     "test",
				Cache:     "cache",
				Artifacts: "artifacts",
			},
		},
	}
}

func mustConstraint(t *testing.T, expr string) compiler.Constraint {
	t.Helper()
	c, err := compiler.ParseConstraint(expr)
	require.NoError(t, err)
	return c
}

func TestShowConfig(t *testing.T) {
	cfg := newRuntimeConfig(t, "localhost",
		config.NetworkProfile{Name: "hardhat", Local: true, ChainID: 31337},
		config.NetworkProfile{Name: "localhost", URL: "http://127.0.0.1:8545", Local: true},
	)
	cfg.Project.Verification.APIKey = "KEY"

	result, err := usecase.NewShowConfig(cfg).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/project", result.ProjectRoot)
	assert.Equal(t, "localhost", result.Network.Name)
	assert.Equal(t, "/project/contracts", result.Paths.Sources)
	assert.Equal(t, "/project/artifacts", result.Paths.Artifacts)
	assert.True(t, result.Verification.Configured())
	assert.Len(t, result.Compilers, 2)

	// The result must not alias the loaded configuration.
	result.Compilers[0].Version = "0.0.0"
	assert.Equal(t, "0.8.10", cfg.Project.Compilers[0].Version)
}

func TestListNetworks(t *testing.T) {
	ctx := context.Background()

	profiles := []config.NetworkProfile{
		{Name: "hardhat", Local: true, ChainID: 31337},
		{Name: "localhost", URL: "http://127.0.0.1:8545", Local: true, Timeout: time.Second},
		{Name: "matic", URL: "https://polygon.example", Credentials: []string{"0x01"}, Timeout: time.Second},
	}

	t.Run("lists resolved then unresolved networks", func(t *testing.T) {
		cfg := newRuntimeConfig(t, "hardhat", profiles...)
		cfg.Project.Unresolved = map[string]error{
			"rinkeby": &domain.MissingValueError{Network: "rinkeby", Field: "url", Variable: "RINKEBY_URL"},
		}

		uc := usecase.NewListNetworks(cfg, &MockNetworkProber{}, &MockProgressSink{}, nopLogger())
		result, err := uc.Run(ctx, usecase.ListNetworksParams{})
		require.NoError(t, err)

		require.Len(t, result.Networks, 4)
		assert.Equal(t, "hardhat", result.Selected)
		assert.Equal(t, []string{"hardhat", "localhost", "matic", "rinkeby"}, networkNames(result.Networks))
		assert.Nil(t, result.Networks[3].Profile)
		assert.ErrorIs(t, result.Networks[3].Error, domain.ErrMissingValue)
		for _, n := range result.Networks {
			assert.False(t, n.Probed)
		}
	})

	t.Run("probes networks with an endpoint", func(t *testing.T) {
		cfg := newRuntimeConfig(t, "hardhat", profiles...)

		prober := &MockNetworkProber{}
		prober.On("Probe", mock.Anything, "localhost").Return(uint64(31337), nil)
		prober.On("Probe", mock.Anything, "matic").Return(uint64(0), errors.New("connection refused"))
		sink := &MockProgressSink{}

		uc := usecase.NewListNetworks(cfg, prober, sink, nopLogger())
		result, err := uc.Run(ctx, usecase.ListNetworksParams{Probe: true})
		require.NoError(t, err)

		byName := make(map[string]usecase.NetworkStatus)
		for _, n := range result.Networks {
			byName[n.Name] = n
		}
		assert.False(t, byName["hardhat"].Probed, "simulated network without fork has nothing to probe")
		assert.True(t, byName["localhost"].Probed)
		assert.Equal(t, uint64(31337), byName["localhost"].ChainID)
		assert.True(t, byName["matic"].Probed)
		assert.Error(t, byName["matic"].ProbeErr)

		prober.AssertExpectations(t)
		assert.Len(t, sink.events, 3)
		assert.Equal(t, 1, sink.done)
	})
}

func networkNames(networks []usecase.NetworkStatus) []string {
	names := make([]string, len(networks))
	for i, n := range networks {
		names[i] = n.Name
	}
	return names
}

func TestResolveCompilers(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns the highest matching compiler", func(t *testing.T) {
		cfg := newRuntimeConfig(t, "hardhat", config.NetworkProfile{Name: "hardhat", Local: true})

		scanner := &MockSourceScanner{}
		scanner.On("Scan", ctx, "/project/contracts").Return([]usecase.SourceFile{
			{Path: "contracts/Token.sol", Constraint: mustConstraint(t, "^0.8.0")},
			{Path: "contracts/Legacy.sol", Constraint: mustConstraint(t, ">=0.7.0 <0.8.0")},
			{Path: "contracts/Any.sol", Constraint: compiler.Any},
		}, nil)

		result, err := usecase.NewResolveCompilers(cfg, scanner).Run(ctx, usecase.ResolveCompilersParams{})
		require.NoError(t, err)
		require.NoError(t, result.Err())

		require.Len(t, result.Assignments, 3)
		assert.Equal(t, "0.8.10", result.Assignments[0].Profile.Version)
		assert.Equal(t, "0.7.0", result.Assignments[1].Profile.Version)
		assert.Equal(t, "0.8.10", result.Assignments[2].Profile.Version)
		assert.Equal(t, map[string]int{"0.8.10": 2, "0.7.0": 1}, result.Usage)
		scanner.AssertExpectations(t)
	})

	t.Run("reports files no compiler satisfies", func(t *testing.T) {
		cfg := newRuntimeConfig(t, "hardhat", config.NetworkProfile{Name: "hardhat", Local: true})

		scanner := &MockSourceScanner{}
		scanner.On("Scan", ctx, "/project/contracts").Return([]usecase.SourceFile{
			{Path: "contracts/Token.sol", Constraint: mustConstraint(t, "^0.8.0")},
			{Path: "contracts/Old.sol", Constraint: mustConstraint(t, "^0.5.0")},
		}, nil)

		result, err := usecase.NewResolveCompilers(cfg, scanner).Run(ctx, usecase.ResolveCompilersParams{})
		require.NoError(t, err)

		assert.NoError(t, result.Assignments[0].Error)
		assert.Nil(t, result.Assignments[1].Profile)
		assert.ErrorIs(t, result.Assignments[1].Error, domain.ErrVersionMismatch)
		assert.ErrorIs(t, result.Err(), domain.ErrVersionMismatch)
	})

	t.Run("applies per-file overrides", func(t *testing.T) {
		cfg := newRuntimeConfig(t, "hardhat", config.NetworkProfile{Name: "hardhat", Local: true})
		cfg.Project.Overrides = []config.CompilerOverride{
			{SourcePath: "contracts/Pinned.sol", Profile: config.CompilerProfile{Version: "0.8.4"}},
		}

		scanner := &MockSourceScanner{}
		scanner.On("Scan", ctx, mock.Anything).Return([]usecase.SourceFile{
			{Path: "contracts/Pinned.sol", Constraint: mustConstraint(t, "^0.8.0")},
		}, nil)

		result, err := usecase.NewResolveCompilers(cfg, scanner).Run(ctx, usecase.ResolveCompilersParams{})
		require.NoError(t, err)
		require.Len(t, result.Assignments, 1)
		assert.True(t, result.Assignments[0].Overridden)
		assert.Equal(t, "0.8.4", result.Assignments[0].Profile.Version)
	})

	t.Run("filters sources with a fuzzy query", func(t *testing.T) {
		cfg := newRuntimeConfig(t, "hardhat", config.NetworkProfile{Name: "hardhat", Local: true})

		scanner := &MockSourceScanner{}
		scanner.On("Scan", ctx, mock.Anything).Return([]usecase.SourceFile{
			{Path: "contracts/Token.sol", Constraint: compiler.Any},
			{Path: "contracts/Vault.sol", Constraint: compiler.Any},
			{Path: "contracts/TokenSale.sol", Constraint: compiler.Any},
		}, nil)

		result, err := usecase.NewResolveCompilers(cfg, scanner).Run(ctx, usecase.ResolveCompilersParams{Query: "token"})
		require.NoError(t, err)

		paths := make([]string, len(result.Assignments))
		for i, a := range result.Assignments {
			paths[i] = a.SourcePath
		}
		assert.Equal(t, []string{"contracts/Token.sol", "contracts/TokenSale.sol"}, paths)
	})

	t.Run("keeps unreadable sources as failures", func(t *testing.T) {
		cfg := newRuntimeConfig(t, "hardhat", config.NetworkProfile{Name: "hardhat", Local: true})

		scanner := &MockSourceScanner{}
		scanner.On("Scan", ctx, mock.Anything).Return([]usecase.SourceFile{
			{Path: "contracts/Broken.sol", Err: errors.New("invalid pragma")},
		}, nil)

		result, err := usecase.NewResolveCompilers(cfg, scanner).Run(ctx, usecase.ResolveCompilersParams{})
		require.NoError(t, err)
		assert.EqualError(t, result.Assignments[0].Error, "invalid pragma")
		assert.Empty(t, result.Usage)
	})

	t.Run("scan failure", func(t *testing.T) {
		cfg := newRuntimeConfig(t, "hardhat", config.NetworkProfile{Name: "hardhat", Local: true})

		scanner := &MockSourceScanner{}
		scanner.On("Scan", ctx, mock.Anything).Return(nil, errors.New("permission denied"))

		_, err := usecase.NewResolveCompilers(cfg, scanner).Run(ctx, usecase.ResolveCompilersParams{})
		assert.ErrorContains(t, err, "failed to scan sources")
	})
}

func TestListAccounts(t *testing.T) {
	ctx := context.Background()

	t.Run("derives an address per credential", func(t *testing.T) {
		cfg := newRuntimeConfig(t, "matic",
			config.NetworkProfile{Name: "matic", URL: "https://polygon.example", Credentials: []string{"0xaa", "0xbb"}},
		)

		deriver := &MockAddressDeriver{}
		deriver.On("Derive", "0xaa").Return(common.HexToAddress("0x1111111111111111111111111111111111111111"), nil)
		deriver.On("Derive", "0xbb").Return(common.HexToAddress("0x2222222222222222222222222222222222222222"), nil)

		result, err := usecase.NewListAccounts(cfg, deriver).Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, "matic", result.Network)
		assert.False(t, result.ReadOnly)
		assert.Equal(t, []string{
			"0x1111111111111111111111111111111111111111",
			"0x2222222222222222222222222222222222222222",
		}, result.Addresses)
		deriver.AssertExpectations(t)
	})

	t.Run("read-only network", func(t *testing.T) {
		cfg := newRuntimeConfig(t, "localhost",
			config.NetworkProfile{Name: "localhost", URL: "http://127.0.0.1:8545", Local: true},
		)

		result, err := usecase.NewListAccounts(cfg, &MockAddressDeriver{}).Run(ctx)
		require.NoError(t, err)
		assert.True(t, result.ReadOnly)
		assert.Empty(t, result.Addresses)
	})

	t.Run("malformed credential", func(t *testing.T) {
		cfg := newRuntimeConfig(t, "matic",
			config.NetworkProfile{Name: "matic", URL: "https://polygon.example", Credentials: []string{"nope"}},
		)

		deriver := &MockAddressDeriver{}
		deriver.On("Derive", "nope").Return(common.Address{}, &domain.InvalidValueError{Field: "private key", Reason: "not hex"})

		_, err := usecase.NewListAccounts(cfg, deriver).Run(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConfiguration)
		assert.Contains(t, err.Error(), "credential #1 of network matic")
		assert.NotContains(t, err.Error(), "nope")
	})
}
