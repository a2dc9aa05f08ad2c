package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/trebuchet-org/chaincfg/internal/domain"
	"github.com/trebuchet-org/chaincfg/internal/domain/config"
)

// Load resolves a declaration against the environment and validates it.
//
// Only the selected network must resolve: an unset variable it references
// fails the load with domain.ErrMissingValue. Other networks are resolved
// best-effort and their failures are kept in ProjectConfig.Unresolved.
// An empty selected name picks the declaration's default network.
func Load(decl config.Declaration, env Env, selected string) (*config.ProjectConfig, error) {
	if err := checkUniqueNames(decl.Networks); err != nil {
		return nil, err
	}

	compilers, err := loadCompilers(decl.Compilers)
	if err != nil {
		return nil, err
	}
	overrides, err := loadOverrides(decl.Overrides)
	if err != nil {
		return nil, err
	}

	defaultNetwork := decl.DefaultNetwork
	if defaultNetwork == "" && len(decl.Networks) > 0 {
		defaultNetwork = decl.Networks[0].Name
	}
	if selected == "" {
		selected = defaultNetwork
	}

	names := lo.Map(decl.Networks, func(n config.NetworkDeclaration, _ int) string { return n.Name })
	if !lo.Contains(names, selected) {
		return nil, &domain.NetworkNotFoundError{Name: selected, Available: names}
	}

	var (
		profiles   []config.NetworkProfile
		unresolved = make(map[string]error)
		active     config.NetworkProfile
	)
	for _, nd := range decl.Networks {
		profile, err := resolveNetwork(nd, env)
		if nd.Name == selected {
			if err != nil {
				return nil, fmt.Errorf("failed to resolve network %s: %w", selected, err)
			}
			active = profile
		} else if err != nil {
			unresolved[nd.Name] = err
			continue
		}
		profiles = append(profiles, profile)
	}

	networks, err := config.NewNetworkSet(profiles...)
	if err != nil {
		return nil, err
	}

	testTimeout, err := millis(decl.TestRunner.TimeoutMs, DefaultTestTimeout)
	if err != nil {
		return nil, &domain.InvalidValueError{Field: "test runner timeout", Value: strconv.FormatInt(decl.TestRunner.TimeoutMs, 10), Reason: err.Error()}
	}

	// The explorer key is optional; verification simply stays unconfigured.
	apiKey, _ := expandValue(decl.Verification.APIKey, env)

	return &config.ProjectConfig{
		DefaultNetwork: defaultNetwork,
		Selected:       active,
		Networks:       networks,
		Unresolved:     unresolved,
		Compilers:      compilers,
		Overrides:      overrides,
		Paths:          withDefaultPaths(decl.Paths),
		Verification:   config.VerificationConfig{APIKey: apiKey},
		TestRunner:     config.TestRunnerConfig{Timeout: testTimeout},
	}, nil
}

func checkUniqueNames(networks []config.NetworkDeclaration) error {
	seen := make(map[string]bool, len(networks))
	for _, n := range networks {
		if n.Name == "" {
			return &domain.InvalidValueError{Field: "network name", Reason: "name is required"}
		}
		if seen[n.Name] {
			return &domain.DuplicateProfileError{Name: n.Name}
		}
		seen[n.Name] = true
	}
	return nil
}

func loadCompilers(decls []config.CompilerDeclaration) ([]config.CompilerProfile, error) {
	if len(decls) == 0 {
		return nil, &domain.InvalidValueError{Field: "compilers", Reason: "at least one compiler must be declared"}
	}
	compilers := make([]config.CompilerProfile, 0, len(decls))
	for _, cd := range decls {
		profile, err := compilerProfile(cd.Version, cd.Optimizer)
		if err != nil {
			return nil, err
		}
		compilers = append(compilers, profile)
	}
	return compilers, nil
}

func loadOverrides(decls []config.OverrideDeclaration) ([]config.CompilerOverride, error) {
	overrides := make([]config.CompilerOverride, 0, len(decls))
	for _, od := range decls {
		if strings.TrimSpace(od.Source) == "" {
			return nil, &domain.InvalidValueError{Field: "override source", Reason: "source path is required"}
		}
		profile, err := compilerProfile(od.Version, od.Optimizer)
		if err != nil {
			return nil, fmt.Errorf("override for %s: %w", od.Source, err)
		}
		overrides = append(overrides, config.CompilerOverride{SourcePath: od.Source, Profile: profile})
	}
	return overrides, nil
}

func compilerProfile(version string, opt config.OptimizerConfig) (config.CompilerProfile, error) {
	v, err := ParseCompilerVersion(version)
	if err != nil {
		return config.CompilerProfile{}, err
	}
	if opt.Runs < 0 {
		return config.CompilerProfile{}, &domain.InvalidValueError{
			Field:  "optimizer runs",
			Value:  strconv.Itoa(opt.Runs),
			Reason: "must not be negative",
		}
	}
	return config.CompilerProfile{
		Version:          v,
		OptimizerEnabled: opt.Enabled,
		OptimizerRuns:    opt.Runs,
	}, nil
}

func resolveNetwork(nd config.NetworkDeclaration, env Env) (config.NetworkProfile, error) {
	profile := config.NetworkProfile{
		Name:    nd.Name,
		ChainID: nd.ChainID,
		Local:   nd.Local,
	}

	if nd.URL != "" {
		endpoint, err := resolveEndpoint(nd.Name, "endpoint URL", nd.URL, env)
		if err != nil {
			return profile, err
		}
		profile.URL = endpoint
	}

	if nd.Forking != nil {
		if nd.Forking.URL == "" {
			return profile, &domain.InvalidValueError{Network: nd.Name, Field: "fork URL", Reason: "fork URL is required"}
		}
		forkURL, err := resolveEndpoint(nd.Name, "fork URL", nd.Forking.URL, env)
		if err != nil {
			return profile, err
		}
		timeout, err := millis(nd.Forking.TimeoutMs, DefaultNetworkTimeout)
		if err != nil {
			return profile, &domain.InvalidValueError{Network: nd.Name, Field: "fork timeout", Reason: err.Error()}
		}
		fork := &config.ForkingConfig{URL: forkURL, Timeout: timeout}
		if nd.Forking.BlockNumber > 0 {
			block := nd.Forking.BlockNumber
			fork.BlockNumber = &block
		}
		profile.Forking = fork
	}

	if profile.URL == "" && !nd.Local {
		return profile, &domain.InvalidValueError{Network: nd.Name, Field: "endpoint URL", Reason: "remote networks need a URL"}
	}
	if profile.URL == "" && profile.ChainID == 0 {
		profile.ChainID = SimulatedChainID
	}

	for i, account := range nd.Accounts {
		field := "signing credential"
		if len(nd.Accounts) > 1 {
			field = fmt.Sprintf("signing credential #%d", i+1)
		}
		credential, missing := expandValue(account, env)
		if missing != "" {
			return profile, &domain.MissingValueError{Network: nd.Name, Field: field, Variable: missing}
		}
		if credential == "" {
			return profile, &domain.InvalidValueError{Network: nd.Name, Field: field, Reason: "credential is empty"}
		}
		profile.Credentials = append(profile.Credentials, credential)
	}

	if nd.BlockGasLimit > 0 {
		limit := nd.BlockGasLimit
		profile.GasLimit = &limit
	}

	gas, err := parseGas(nd.Gas)
	if err != nil {
		return profile, &domain.InvalidValueError{Network: nd.Name, Field: "gas", Value: nd.Gas, Reason: err.Error()}
	}
	profile.Gas = gas

	pricing, price, err := parseGasPrice(nd.GasPrice)
	if err != nil {
		return profile, &domain.InvalidValueError{Network: nd.Name, Field: "gas price", Value: nd.GasPrice, Reason: err.Error()}
	}
	profile.GasPricing = pricing
	profile.GasPrice = price

	timeout, err := millis(nd.TimeoutMs, DefaultNetworkTimeout)
	if err != nil {
		return profile, &domain.InvalidValueError{Network: nd.Name, Field: "timeout", Reason: err.Error()}
	}
	profile.Timeout = timeout

	return profile, nil
}

// resolveEndpoint expands and validates a URL-valued field
func resolveEndpoint(network, field, raw string, env Env) (string, error) {
	value, missing := expandValue(raw, env)
	if missing != "" {
		return "", &domain.MissingValueError{Network: network, Field: field, Variable: missing}
	}
	if err := validateEndpoint(value); err != nil {
		return "", &domain.InvalidValueError{
			Network: network,
			Field:   field,
			Value:   config.RedactURL(value),
			Reason:  err.Error(),
		}
	}
	return value, nil
}

func validateEndpoint(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("not a URL")
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

func parseGas(raw string) (config.GasSetting, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "auto" {
		return config.AutoGas, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return config.GasSetting{}, fmt.Errorf(`expected "auto" or a positive integer`)
	}
	return config.GasSetting{Value: v}, nil
}

func parseGasPrice(raw string) (config.GasPricingMode, uint64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "auto" {
		return config.GasPricingAuto, 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return "", 0, fmt.Errorf(`expected "auto" or a positive wei amount`)
	}
	return config.GasPricingFixed, v, nil
}

func millis(ms int64, fallback time.Duration) (time.Duration, error) {
	switch {
	case ms < 0:
		return 0, fmt.Errorf("must not be negative")
	case ms == 0:
		return fallback, nil
	default:
		return time.Duration(ms) * time.Millisecond, nil
	}
}

func withDefaultPaths(p config.PathConfig) config.PathConfig {
	if p.Sources == "" {
		p.Sources = DefaultPaths.Sources
	}
	if p.Tests == "" {
		p.Tests = DefaultPaths.Tests
	}
	if p.Cache == "" {
		p.Cache = DefaultPaths.Cache
	}
	if p.Artifacts == "" {
		p.Artifacts = DefaultPaths.Artifacts
	}
	return p
}
