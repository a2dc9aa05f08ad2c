package blockchain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/chaincfg/internal/domain"
	"github.com/trebuchet-org/chaincfg/internal/domain/config"
	"github.com/trebuchet-org/chaincfg/internal/usecase"
)

// DefaultProbeTimeout bounds a probe when the profile declares no timeout
const DefaultProbeTimeout = 20 * time.Second

// ProberAdapter implements NetworkProber using ethclient
type ProberAdapter struct{}

// NewProberAdapter creates a new network prober adapter
func NewProberAdapter() *ProberAdapter {
	return &ProberAdapter{}
}

// Probe asks the profile's endpoint for its chain id within the profile's timeout
func (p *ProberAdapter) Probe(ctx context.Context, network config.NetworkProfile) (uint64, error) {
	endpoint := network.Endpoint()
	if endpoint == "" {
		return 0, fmt.Errorf("network '%s' has no endpoint to probe", network.Name)
	}

	timeout := network.Timeout
	if network.URL == "" && network.Forking != nil && network.Forking.Timeout > 0 {
		timeout = network.Forking.Timeout
	}
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	unreachable := func(err error) error {
		return &domain.NetworkUnreachableError{
			Network: network.Name,
			URL:     config.RedactURL(endpoint),
			Timeout: timeout,
			Err:     scrub(err, endpoint),
		}
	}

	client, err := ethclient.DialContext(ctx, endpoint)
	if err != nil {
		return 0, unreachable(err)
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return 0, unreachable(err)
	}

	// Verify chain ID matches
	got := chainID.Uint64()
	if network.ChainID != 0 && network.URL != "" && got != network.ChainID {
		return got, &domain.InvalidValueError{
			Network: network.Name,
			Field:   "chain id",
			Reason:  fmt.Sprintf("endpoint reports %d but profile declares %d", got, network.ChainID),
		}
	}

	return got, nil
}

// scrub removes the raw endpoint from transport errors, which may quote it
// with its credentials.
func scrub(err error, endpoint string) error {
	msg := err.Error()
	if !strings.Contains(msg, endpoint) {
		return err
	}
	return errors.New(strings.ReplaceAll(msg, endpoint, config.RedactURL(endpoint)))
}

var _ usecase.NetworkProber = (*ProberAdapter)(nil)
