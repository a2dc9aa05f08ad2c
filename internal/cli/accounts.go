package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/chaincfg/internal/cli/render"
)

// NewAccountsCmd creates the accounts command
func NewAccountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Print the accounts of the selected network",
		Long: `Derive and print the address of every signing credential configured for
the selected network. Networks without credentials are read-only.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Get app from context
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListAccounts.Run(cmd.Context())
			if err != nil {
				return err
			}

			// Render output
			renderer := render.NewAccountsRenderer(cmd.OutOrStdout())
			if app.Config.JSON {
				return renderer.RenderJSON(result)
			}
			return renderer.RenderAccounts(result)
		},
	}

	return cmd
}
