package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/samber/lo"
	"github.com/trebuchet-org/chaincfg/internal/domain/config"
)

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct {
	Probe bool // ask each resolved endpoint for its chain id
}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
	Selected string
	Default  string
}

// NetworkStatus represents the status of a network
type NetworkStatus struct {
	Name     string
	Profile  *config.NetworkProfile // nil when the profile did not resolve
	Error    error                  // why the profile did not resolve
	Probed   bool
	ChainID  uint64
	ProbeErr error
}

// ListNetworks is a use case for listing declared networks
type ListNetworks struct {
	cfg    *config.RuntimeConfig
	prober NetworkProber
	sink   ProgressSink
	log    *slog.Logger
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(cfg *config.RuntimeConfig, prober NetworkProber, sink ProgressSink, log *slog.Logger) *ListNetworks {
	return &ListNetworks{
		cfg:    cfg,
		prober: prober,
		sink:   sink,
		log:    log,
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	project := uc.cfg.Project

	// Resolved profiles keep declaration order; unresolved ones follow.
	networks := make([]NetworkStatus, 0, project.Networks.Len()+len(project.Unresolved))
	for _, profile := range project.Networks.All() {
		p := profile
		networks = append(networks, NetworkStatus{Name: p.Name, Profile: &p})
	}
	for _, name := range sortedKeys(project.Unresolved) {
		networks = append(networks, NetworkStatus{Name: name, Error: project.Unresolved[name]})
	}

	if params.Probe {
		uc.probeAll(ctx, networks)
	}

	return &ListNetworksResult{
		Networks: networks,
		Selected: project.Selected.Name,
		Default:  project.DefaultNetwork,
	}, nil
}

// probeAll probes every resolved network concurrently. Each probe is
// bounded by its profile's timeout inside the prober.
func (uc *ListNetworks) probeAll(ctx context.Context, networks []NetworkStatus) {
	var targets []int
	for i := range networks {
		if networks[i].Profile != nil && networks[i].Profile.Endpoint() != "" {
			targets = append(targets, i)
		}
	}
	if len(targets) == 0 {
		return
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "probing",
		Total:   len(targets),
		Message: fmt.Sprintf("Probing %d networks...", len(targets)),
		Spinner: true,
	})
	defer uc.sink.Done()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		done int
	)
	for _, i := range targets {
		wg.Add(1)
		go func(status *NetworkStatus) {
			defer wg.Done()

			chainID, err := uc.prober.Probe(ctx, *status.Profile)
			status.Probed = true
			status.ChainID = chainID
			status.ProbeErr = err
			if err != nil {
				uc.log.Debug("probe failed", "network", status.Name, "error", err)
			}

			mu.Lock()
			done++
			uc.sink.OnProgress(ctx, ProgressEvent{
				Stage:   "probing",
				Current: done,
				Total:   len(targets),
				Message: fmt.Sprintf("Probed %s (%d/%d)", status.Name, done, len(targets)),
				Spinner: true,
			})
			mu.Unlock()
		}(&networks[i])
	}
	wg.Wait()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	slices.Sort(keys)
	return keys
}
