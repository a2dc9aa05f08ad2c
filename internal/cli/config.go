package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/chaincfg/internal/cli/render"
)

// NewConfigCmd creates the config command
func NewConfigCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Long: `Show the configuration resolved for the selected network: the network
profile, compilers, project paths, verification and test runner settings.

Private keys and API keys are masked.

Examples:
  chaincfg config
  chaincfg config --network matic --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Get app from context
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ShowConfig.Run(cmd.Context())
			if err != nil {
				return err
			}

			if app.Config.JSON && !cmd.Flags().Changed("format") {
				format = render.FormatJSON
			}

			// Render output
			renderer := render.NewConfigRenderer(cmd.OutOrStdout())
			return renderer.RenderConfig(result, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", render.FormatText, "Output format: text, json or yaml")

	return cmd
}
