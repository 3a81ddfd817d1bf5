package cli

import (
	"github.com/spf13/cobra"
	"github.com/tablelandnetwork/tabdeploy/internal/cli/render"
)

// NewConfigCmd creates the config command
func NewConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Long: `Show the configuration tabdeploy runs with: built-in defaults merged with
tabdeploy.toml, .env and TABDEPLOY_* variables. Keys are redacted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			view, err := app.ShowConfig.Run(cmd.Context())
			if err != nil {
				return err
			}

			return render.NewConfigRenderer(cmd.OutOrStdout()).Render(view)
		},
	}
}
