package render

import (
	"fmt"
	"io"

	mask "github.com/showa-93/go-mask"
	"github.com/trebuchet-org/chaincfg/internal/domain/config"
	"github.com/trebuchet-org/chaincfg/internal/usecase"
	"gopkg.in/yaml.v3"
)

// Output formats of the config command
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ConfigView is the printable form of the loaded configuration.
// Fields tagged mask are secrets and never leave the process unmasked.
type ConfigView struct {
	ProjectRoot    string                    `json:"projectRoot" yaml:"projectRoot"`
	ConfigSource   string                    `json:"configSource" yaml:"configSource"`
	DefaultNetwork string                    `json:"defaultNetwork" yaml:"defaultNetwork"`
	Network        NetworkView               `json:"network" yaml:"network"`
	Compilers      []config.CompilerProfile  `json:"compilers" yaml:"compilers"`
	Overrides      []config.CompilerOverride `json:"overrides,omitempty" yaml:"overrides,omitempty"`
	Paths          config.PathConfig         `json:"paths" yaml:"paths"`
	Verification   VerificationView          `json:"verification" yaml:"verification"`
	TestRunner     TestRunnerView            `json:"testRunner" yaml:"testRunner"`
}

// NetworkView is the printable form of a network profile
type NetworkView struct {
	Name          string    `json:"name" yaml:"name"`
	URL           string    `json:"url,omitempty" yaml:"url,omitempty"`
	Accounts      []string  `json:"accounts,omitempty" yaml:"accounts,omitempty" mask:"fixed"`
	ChainID       uint64    `json:"chainId,omitempty" yaml:"chainId,omitempty"`
	BlockGasLimit *uint64   `json:"blockGasLimit,omitempty" yaml:"blockGasLimit,omitempty"`
	Gas           string    `json:"gas" yaml:"gas"`
	GasPricing    string    `json:"gasPricing" yaml:"gasPricing"`
	GasPrice      uint64    `json:"gasPrice,omitempty" yaml:"gasPrice,omitempty"`
	Timeout       string    `json:"timeout" yaml:"timeout"`
	Forking       *ForkView `json:"forking,omitempty" yaml:"forking,omitempty"`
	Local         bool      `json:"local" yaml:"local"`
}

// ForkView is the printable form of a fork source
type ForkView struct {
	URL         string  `json:"url" yaml:"url"`
	BlockNumber *uint64 `json:"blockNumber,omitempty" yaml:"blockNumber,omitempty"`
	Timeout     string  `json:"timeout" yaml:"timeout"`
}

// VerificationView is the printable form of the verification settings
type VerificationView struct {
	Configured bool   `json:"configured" yaml:"configured"`
	APIKey     string `json:"apiKey,omitempty" yaml:"apiKey,omitempty" mask:"fixed"`
}

// TestRunnerView is the printable form of the test runner settings
type TestRunnerView struct {
	Timeout string `json:"timeout" yaml:"timeout"`
}

// ConfigRenderer renders config-related output
type ConfigRenderer struct {
	out    io.Writer
	masker *mask.Masker
}

// NewConfigRenderer creates a new config renderer
func NewConfigRenderer(out io.Writer) *ConfigRenderer {
	masker := mask.NewMasker()
	masker.RegisterMaskStringFunc(mask.MaskTypeFixed, masker.MaskFixedString)

	return &ConfigRenderer{
		out:    out,
		masker: masker,
	}
}

// RenderConfig renders the configuration in the given format
func (r *ConfigRenderer) RenderConfig(result *usecase.ShowConfigResult, format string) error {
	view, err := r.View(result)
	if err != nil {
		return err
	}

	switch format {
	case FormatJSON:
		return WriteJSON(r.out, view)
	case FormatYAML:
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		r.renderText(view)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (use text, json or yaml)", format)
	}
}

// View builds the masked printable configuration
func (r *ConfigRenderer) View(result *usecase.ShowConfigResult) (ConfigView, error) {
	view := ConfigView{
		ProjectRoot:    result.ProjectRoot,
		ConfigSource:   result.ConfigSource,
		DefaultNetwork: result.DefaultNetwork,
		Network:        newNetworkView(result.Network),
		Compilers:      result.Compilers,
		Overrides:      result.Overrides,
		Paths:          result.Paths,
		Verification: VerificationView{
			Configured: result.Verification.Configured(),
			APIKey:     result.Verification.APIKey,
		},
		TestRunner: TestRunnerView{Timeout: result.TestRunner.Timeout.String()},
	}

	masked, err := r.masker.Mask(view)
	if err != nil {
		return ConfigView{}, fmt.Errorf("failed to mask secrets: %w", err)
	}
	v, ok := masked.(ConfigView)
	if !ok {
		return ConfigView{}, fmt.Errorf("failed to mask secrets: unexpected %T", masked)
	}
	return v, nil
}

func newNetworkView(n config.NetworkProfile) NetworkView {
	view := NetworkView{
		Name:          n.Name,
		URL:           config.RedactURL(n.URL),
		Accounts:      append([]string(nil), n.Credentials...),
		ChainID:       n.ChainID,
		BlockGasLimit: n.GasLimit,
		Gas:           n.Gas.String(),
		GasPricing:    string(n.GasPricing),
		GasPrice:      n.GasPrice,
		Timeout:       n.Timeout.String(),
		Local:         n.Local,
	}
	if n.Forking != nil {
		view.Forking = &ForkView{
			URL:         config.RedactURL(n.Forking.URL),
			BlockNumber: n.Forking.BlockNumber,
			Timeout:     n.Forking.Timeout.String(),
		}
	}
	return view
}

func (r *ConfigRenderer) renderText(v ConfigView) {
	fmt.Fprintf(r.out, "📋 Configuration %s\n", labelStyle.Sprintf("(source: %s)", v.ConfigSource))
	fmt.Fprintf(r.out, "Project root:    %s\n", v.ProjectRoot)
	fmt.Fprintf(r.out, "Default network: %s\n", v.DefaultNetwork)
	fmt.Fprintln(r.out)

	n := v.Network
	section(r.out, fmt.Sprintf("🌐 Network: %s", selectedStyle.Sprint(n.Name)))
	switch {
	case n.URL != "":
		fmt.Fprintf(r.out, "  Endpoint:        %s\n", n.URL)
	case n.Local:
		fmt.Fprintf(r.out, "  Endpoint:        %s\n", labelStyle.Sprint("(simulated)"))
	}
	if n.Forking != nil {
		block := "latest"
		if n.Forking.BlockNumber != nil {
			block = fmt.Sprintf("block %d", *n.Forking.BlockNumber)
		}
		fmt.Fprintf(r.out, "  Fork:            %s @ %s (timeout %s)\n", n.Forking.URL, block, n.Forking.Timeout)
	}
	if n.ChainID != 0 {
		fmt.Fprintf(r.out, "  Chain ID:        %d\n", n.ChainID)
	}
	if len(n.Accounts) == 0 {
		fmt.Fprintf(r.out, "  Accounts:        %s\n", labelStyle.Sprint("none (read-only)"))
	} else {
		for i, a := range n.Accounts {
			fmt.Fprintf(r.out, "  Account #%d:      %s\n", i+1, a)
		}
	}
	fmt.Fprintf(r.out, "  Gas:             %s\n", n.Gas)
	if n.GasPrice != 0 {
		fmt.Fprintf(r.out, "  Gas price:       %d wei\n", n.GasPrice)
	} else {
		fmt.Fprintf(r.out, "  Gas price:       %s\n", n.GasPricing)
	}
	if n.BlockGasLimit != nil {
		fmt.Fprintf(r.out, "  Block gas limit: %d\n", *n.BlockGasLimit)
	}
	fmt.Fprintf(r.out, "  Timeout:         %s\n", n.Timeout)
	fmt.Fprintln(r.out)

	section(r.out, "🔧 Compilers")
	for _, c := range v.Compilers {
		fmt.Fprintf(r.out, "  %s\n", versionStyle.Sprint(c.String()))
	}
	for _, o := range v.Overrides {
		fmt.Fprintf(r.out, "  %s → %s\n", o.SourcePath, versionStyle.Sprint(o.Profile.String()))
	}
	fmt.Fprintln(r.out)

	section(r.out, "📁 Paths")
	fmt.Fprintf(r.out, "  Sources:   %s\n", v.Paths.Sources)
	fmt.Fprintf(r.out, "  Tests:     %s\n", v.Paths.Tests)
	fmt.Fprintf(r.out, "  Cache:     %s\n", v.Paths.Cache)
	fmt.Fprintf(r.out, "  Artifacts: %s\n", v.Paths.Artifacts)
	fmt.Fprintln(r.out)

	if v.Verification.Configured {
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Verification API key: %s", v.Verification.APIKey)))
	} else {
		fmt.Fprintln(r.out, FormatWarning("Verification API key not configured"))
	}
	fmt.Fprintf(r.out, "🧪 Test timeout: %s\n", v.TestRunner.Timeout)
}
