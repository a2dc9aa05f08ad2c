package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/chaincfg/internal/cli/render"
	"github.com/trebuchet-org/chaincfg/internal/usecase"
)

// NewCompilersCmd creates the compilers command
func NewCompilersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compilers [query]",
		Short: "Show which compiler builds each source file",
		Long: `Match every source file's version pragma against the declared compilers.
Overrides pin a file to a specific compiler. The command fails when a file
has no matching compiler.

The optional query fuzzy-filters source paths.

Examples:
  chaincfg compilers
  chaincfg compilers token`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Get app from context
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.ResolveCompilersParams{}
			if len(args) > 0 {
				params.Query = args[0]
			}

			result, err := app.ResolveCompilers.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			// Render output
			renderer := render.NewCompilersRenderer(cmd.OutOrStdout())
			if app.Config.JSON {
				err = renderer.RenderJSON(result)
			} else {
				err = renderer.RenderCompilers(result)
			}
			if err != nil {
				return err
			}

			return result.Err()
		},
	}

	return cmd
}
