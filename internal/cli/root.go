package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/chaincfg/internal/app"
	"github.com/trebuchet-org/chaincfg/internal/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chaincfg",
		Short: "Inspect and validate smart contract toolchain configuration",
		Long: `chaincfg loads the toolchain configuration of a smart contract project
(toolchain.toml, .env and the process environment) and reports the resolved
network profiles, compiler assignments and signer accounts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			// Set up viper from env and the flags that have been set
			v := config.SetupViper("", cmd)

			// Initialize app with DI
			appInstance, err := app.InitApp(v)
			if err != nil {
				return err
			}
			appInstance.Log.Debug("configuration loaded",
				"root", appInstance.Config.ProjectRoot,
				"source", appInstance.Config.ConfigSource,
				"network", appInstance.Config.NetworkName)

			// Store app in context
			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			// Add timeout if configured
			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				// Store cancel func to be called on command completion
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)

			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network profile to select (defaults to default_network)")
	rootCmd.PersistentFlags().String("project-root", "", "Project root (defaults to the nearest directory with toolchain.toml)")
	rootCmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable spinners and prompts")

	// Add command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "inspect",
		Title: "Inspection Commands",
	})

	configCmd := NewConfigCmd()
	configCmd.GroupID = "inspect"
	rootCmd.AddCommand(configCmd)

	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "inspect"
	rootCmd.AddCommand(networksCmd)

	compilersCmd := NewCompilersCmd()
	compilersCmd.GroupID = "inspect"
	rootCmd.AddCommand(compilersCmd)

	accountsCmd := NewAccountsCmd()
	accountsCmd.GroupID = "inspect"
	rootCmd.AddCommand(accountsCmd)

	// Version command
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
