package cli

import (
	"github.com/spf13/cobra"
	"github.com/tablelandnetwork/tabdeploy/internal/cli/render"
	"github.com/tablelandnetwork/tabdeploy/internal/usecase"
)

// NewProxyCmd creates the proxy command
func NewProxyCmd() *cobra.Command {
	var params usecase.ShowProxyParams

	cmd := &cobra.Command{
		Use:   "proxy",
		Short: "Show the proxy of the selected network",
		Long: `Show the proxy recorded for the selected network, the proxy configured in
the proxies table of tabdeploy.toml and the implementation the proxy
currently delegates to.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			record, err := app.ShowProxy.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return render.NewProxyRenderer(cmd.OutOrStdout()).Render(record)
		},
	}

	cmd.Flags().StringVar(&params.Record, "record", "", "Record to show, e.g. gov or vrf")
	cmd.Flags().BoolVar(&params.Offline, "offline", false, "Do not read the implementation from the node")

	return cmd
}
