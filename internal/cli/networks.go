package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/chaincfg/internal/cli/render"
	"github.com/trebuchet-org/chaincfg/internal/usecase"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	var probe bool

	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List declared network profiles",
		Long: `List every declared network profile and whether it resolved against the
environment. The selected network is marked with *.

With --probe, each resolved endpoint is asked for its chain id within the
profile's timeout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Get app from context
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			// Run use case
			params := usecase.ListNetworksParams{Probe: probe}
			result, err := app.ListNetworks.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			// Render output
			renderer := render.NewNetworksRenderer(cmd.OutOrStdout())
			if app.Config.JSON {
				return renderer.RenderJSON(result)
			}
			return renderer.RenderNetworksList(result)
		},
	}

	cmd.Flags().BoolVar(&probe, "probe", false, "Query each endpoint for its chain id")

	return cmd
}
