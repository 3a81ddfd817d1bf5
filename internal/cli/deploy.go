package cli

import (
	"github.com/spf13/cobra"
	"github.com/tablelandnetwork/tabdeploy/internal/cli/render"
	"github.com/tablelandnetwork/tabdeploy/internal/usecase"
)

// DefaultContract is deployed when --contract is not given
const DefaultContract = "TableHolders"

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	var (
		contract string
		record   string
		initArgs []string
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy a contract behind a new UUPS proxy",
		Long: `Deploy the implementation of a contract, deploy an ERC1967Proxy pointing at
it and call initialize with the given arguments. The proxy address is written
to .<network>.env (or .<network>.<record>.env with --record).

An implementation with identical bytecode that is already deployed on the
network is reused.

Examples:
  tabdeploy deploy
  tabdeploy deploy --network localhost
  tabdeploy deploy --contract TableGov --arg 0x5FC8d32690cc91D4c39d9d3abcBD16989F875707 --record gov`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.DeployProxy.Run(cmd.Context(), usecase.DeployProxyParams{
				Contract: contract,
				Record:   record,
				InitArgs: initArgs,
			})
			if err != nil {
				return err
			}

			return render.NewDeployRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	cmd.Flags().StringVarP(&contract, "contract", "c", DefaultContract, "Contract name or fully qualified name to deploy")
	cmd.Flags().StringVar(&record, "record", "", "Record name, the proxy is written to .<network>.<record>.env")
	cmd.Flags().StringArrayVar(&initArgs, "arg", nil, "Initializer argument, repeat for each parameter")

	return cmd
}

// NewDeployGovCmd creates the deploy-gov command
func NewDeployGovCmd() *cobra.Command {
	var contract string

	cmd := &cobra.Command{
		Use:   "deploy-gov",
		Short: "Deploy the governance contract for the network's token",
		Long: `Deploy TableGov behind a UUPS proxy, initialised with the token recorded in
.<network>.env (the CONTRACT environment variable takes precedence). The
governance proxy is written to .<network>.gov.env.

Fails before contacting the node when no token is recorded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.DeployGovernance.Run(cmd.Context(), usecase.DeployGovernanceParams{
				Contract: contract,
			})
			if err != nil {
				return err
			}

			return render.NewDeployRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	cmd.Flags().StringVarP(&contract, "contract", "c", usecase.GovernanceContract, "Governance contract to deploy")

	return cmd
}

// NewDeployVRFCmd creates the deploy-vrf command
func NewDeployVRFCmd() *cobra.Command {
	var params usecase.DeployVRFParams

	cmd := &cobra.Command{
		Use:   "deploy-vrf",
		Short: "Deploy TablelandVRF behind a UUPS proxy",
		Long: `Deploy TablelandVRF behind a UUPS proxy, initialised with its base and
external URIs. The proxy is written to .<network>.vrf.env.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.DeployVRF.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return render.NewDeployRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	cmd.Flags().StringVar(&params.BaseURI, "base-uri", usecase.DefaultVRFBaseURI, "Token base URI")
	cmd.Flags().StringVar(&params.ExternalURI, "external-uri", usecase.DefaultVRFExternalURI, "External URI")

	return cmd
}
