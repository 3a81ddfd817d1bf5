package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tablelandnetwork/tabdeploy/internal/adapters/progress"
	"github.com/tablelandnetwork/tabdeploy/internal/app"
	"github.com/tablelandnetwork/tabdeploy/internal/config"
	"github.com/tablelandnetwork/tabdeploy/internal/usecase"
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
		Use:   "tabdeploy",
		Short: "Deploy and upgrade Tableland holder contracts behind UUPS proxies",
		Long: `tabdeploy deploys TableHolders, TableGov and TablelandVRF behind ERC-1967
upgradeable proxies and records the proxy address of every network in
.<network>.env files, so that later upgrades keep the same address.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd)
			bindGlobalFlags(v, cmd)

			appInstance, err := app.InitApp(v, newProgressSink(v))
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().BoolP("yes", "y", false, "Skip confirmation prompts (same as --non-interactive)")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to use (e.g., hardhat, polygon_mumbai)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Abort the command after this duration (default 5m)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	// Main commands
	for _, cmd := range []*cobra.Command{
		NewDeployCmd(),
		NewDeployGovCmd(),
		NewDeployVRFCmd(),
		NewUpgradeCmd(),
	} {
		cmd.GroupID = "main"
		rootCmd.AddCommand(cmd)
	}

	// Management commands
	for _, cmd := range []*cobra.Command{
		NewProxyCmd(),
		NewAccountsCmd(),
		NewNetworksCmd(),
		NewConfigCmd(),
	} {
		cmd.GroupID = "management"
		rootCmd.AddCommand(cmd)
	}

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// bindGlobalFlags maps flag aliases onto their viper keys
func bindGlobalFlags(v *viper.Viper, cmd *cobra.Command) {
	if f := cmd.Flag("yes"); f != nil && f.Changed && f.Value.String() == "true" {
		v.Set("non_interactive", true)
	}
}

// newProgressSink shows a spinner only when a person is watching stderr
func newProgressSink(v *viper.Viper) usecase.ProgressSink {
	if v.GetBool("debug") || v.GetBool("non_interactive") || !isatty.IsTerminal(os.Stderr.Fd()) {
		return progress.NewNopSink()
	}
	return progress.NewSpinnerSink()
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	a, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return a, nil
}
