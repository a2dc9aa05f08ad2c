package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/trebuchet-org/chaincfg/internal/domain/config"
	"github.com/trebuchet-org/chaincfg/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{
		out: out,
	}
}

type networkJSON struct {
	Name       string `json:"name"`
	Selected   bool   `json:"selected"`
	Default    bool   `json:"default"`
	Endpoint   string `json:"endpoint,omitempty"`
	ChainID    uint64 `json:"chainId,omitempty"`
	Accounts   int    `json:"accounts"`
	GasPricing string `json:"gasPricing,omitempty"`
	Timeout    string `json:"timeout,omitempty"`
	Error      string `json:"error,omitempty"`
	Probed     bool   `json:"probed"`
	Reachable  *bool  `json:"reachable,omitempty"`
	ProbeError string `json:"probeError,omitempty"`
}

// RenderJSON renders the network list as JSON
func (r *NetworksRenderer) RenderJSON(result *usecase.ListNetworksResult) error {
	out := make([]networkJSON, 0, len(result.Networks))
	for _, n := range result.Networks {
		item := networkJSON{
			Name:       n.Name,
			Selected:   n.Name == result.Selected,
			Default:    n.Name == result.Default,
			Error:      errString(n.Error),
			Probed:     n.Probed,
			ProbeError: errString(n.ProbeErr),
		}
		if p := n.Profile; p != nil {
			item.Endpoint = config.RedactURL(p.Endpoint())
			item.ChainID = p.ChainID
			item.Accounts = len(p.Credentials)
			item.GasPricing = string(p.GasPricing)
			item.Timeout = p.Timeout.String()
		}
		if n.Probed {
			reachable := n.ProbeErr == nil
			item.Reachable = &reachable
			if reachable {
				item.ChainID = n.ChainID
			}
		}
		out = append(out, item)
	}
	return WriteJSON(r.out, out)
}

// RenderNetworksList renders the list of networks as a table
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks declared")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Networks:")
	fmt.Fprintln(r.out)

	title := cases.Title(language.English)

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateHeader = false
	t.Style().Box = table.BoxStyle{
		PaddingRight: "   ",
	}
	t.AppendHeader(table.Row{"NETWORK", "ENDPOINT", "CHAIN ID", "ACCOUNTS", "GAS PRICE", "TIMEOUT", "STATUS"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})

	var failures []usecase.NetworkStatus
	for _, n := range result.Networks {
		name := n.Name
		if n.Name == result.Selected {
			name = selectedStyle.Sprint(n.Name + " *")
		}

		if n.Profile == nil {
			t.AppendRow(table.Row{name, "-", "-", "-", "-", "-", failStyle.Sprint("✗ unresolved")})
			failures = append(failures, n)
			continue
		}

		p := n.Profile
		accounts := labelStyle.Sprint("read-only")
		if !p.ReadOnly() {
			accounts = strconv.Itoa(len(p.Credentials))
		}
		t.AppendRow(table.Row{
			name,
			endpointLabel(p),
			chainIDLabel(n),
			accounts,
			title.String(string(p.GasPricing)),
			formatDuration(p.Timeout),
			statusLabel(n),
		})
		if n.ProbeErr != nil {
			failures = append(failures, n)
		}
	}

	fmt.Fprintln(r.out, t.Render())

	if len(failures) > 0 {
		fmt.Fprintln(r.out)
		for _, n := range failures {
			err := n.Error
			if err == nil {
				err = n.ProbeErr
			}
			fmt.Fprintf(r.out, "  %s %s: %v\n", failStyle.Sprint("✗"), n.Name, err)
		}
	}

	return nil
}

func endpointLabel(p *config.NetworkProfile) string {
	switch {
	case !p.Simulated():
		return config.RedactURL(p.URL)
	case p.Forking != nil:
		return "fork of " + config.RedactURL(p.Forking.URL)
	default:
		return labelStyle.Sprint("simulated")
	}
}

func chainIDLabel(n usecase.NetworkStatus) string {
	if n.Probed && n.ProbeErr == nil {
		return strconv.FormatUint(n.ChainID, 10)
	}
	if n.Profile.ChainID != 0 {
		return strconv.FormatUint(n.Profile.ChainID, 10)
	}
	return "-"
}

func statusLabel(n usecase.NetworkStatus) string {
	switch {
	case !n.Probed:
		return okStyle.Sprint("resolved")
	case n.ProbeErr != nil:
		return failStyle.Sprint("✗ unreachable")
	default:
		return okStyle.Sprint("✓ reachable")
	}
}
