package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/chaincfg/internal/usecase"
)

// AccountsRenderer renders signer accounts
type AccountsRenderer struct {
	out io.Writer
}

// NewAccountsRenderer creates a new accounts renderer
func NewAccountsRenderer(out io.Writer) *AccountsRenderer {
	return &AccountsRenderer{
		out: out,
	}
}

// RenderJSON renders the accounts as JSON
func (r *AccountsRenderer) RenderJSON(result *usecase.ListAccountsResult) error {
	addresses := result.Addresses
	if addresses == nil {
		addresses = []string{}
	}
	return WriteJSON(r.out, map[string]any{
		"network":   result.Network,
		"readOnly":  result.ReadOnly,
		"addresses": addresses,
	})
}

// RenderAccounts renders the account addresses of a network
func (r *AccountsRenderer) RenderAccounts(result *usecase.ListAccountsResult) error {
	if result.ReadOnly {
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("Network %s has no accounts (read-only)", result.Network)))
		return nil
	}

	fmt.Fprintf(r.out, "🔑 Accounts on %s:\n", selectedStyle.Sprint(result.Network))
	for i, address := range result.Addresses {
		fmt.Fprintf(r.out, "  #%d %s\n", i+1, address)
	}
	return nil
}
