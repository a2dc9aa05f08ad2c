package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/chaincfg/internal/domain/config"
)

// ListAccountsResult contains the signer addresses of the selected network
type ListAccountsResult struct {
	Network   string
	ReadOnly  bool
	Addresses []string
}

// ListAccounts derives the account addresses of the selected network's credentials
type ListAccounts struct {
	cfg     *config.RuntimeConfig
	deriver AddressDeriver
}

// NewListAccounts creates a new ListAccounts use case
func NewListAccounts(cfg *config.RuntimeConfig, deriver AddressDeriver) *ListAccounts {
	return &ListAccounts{
		cfg:     cfg,
		deriver: deriver,
	}
}

// Run executes the use case
func (uc *ListAccounts) Run(ctx context.Context) (*ListAccountsResult, error) {
	network := uc.cfg.Project.Selected

	result := &ListAccountsResult{
		Network:  network.Name,
		ReadOnly: network.ReadOnly(),
	}
	for i, credential := range network.Credentials {
		address, err := uc.deriver.Derive(credential)
		if err != nil {
			return nil, fmt.Errorf("credential #%d of network %s: %w", i+1, network.Name, err)
		}
		result.Addresses = append(result.Addresses, address.Hex())
	}

	return result, nil
}
