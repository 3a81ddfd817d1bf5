package cli

import (
	"github.com/spf13/cobra"
	"github.com/tablelandnetwork/tabdeploy/internal/cli/render"
	"github.com/tablelandnetwork/tabdeploy/internal/usecase"
)

// NewUpgradeCmd creates the upgrade command
func NewUpgradeCmd() *cobra.Command {
	var params usecase.UpgradeProxyParams

	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Point the network's proxy at a new implementation",
		Long: `Deploy the current build of a contract (or reuse an identical one) and
upgrade the proxy recorded in .<network>.env to it. The proxy address never
changes; a warning is printed when the implementation stays the same.

Examples:
  tabdeploy upgrade --network localhost
  tabdeploy upgrade --contract TableGov --record gov`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.UpgradeProxy.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return render.NewUpgradeRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	cmd.Flags().StringVarP(&params.Contract, "contract", "c", DefaultContract, "Contract name or fully qualified name of the new implementation")
	cmd.Flags().StringVar(&params.Record, "record", "", "Record holding the proxy, read from .<network>.<record>.env")

	return cmd
}
