package cli

import (
	"github.com/spf13/cobra"
	"github.com/tablelandnetwork/tabdeploy/internal/cli/render"
)

// NewAccountsCmd creates the accounts command
func NewAccountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List the accounts usable on the selected network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListAccounts.Run(cmd.Context())
			if err != nil {
				return err
			}

			return render.NewAccountsRenderer(cmd.OutOrStdout()).Render(result)
		},
	}
}
