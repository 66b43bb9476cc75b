package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/marketplace-deploy/internal/cli/render"
	"github.com/trebuchet-org/marketplace-deploy/internal/usecase"
)

// NewVerifyCmd creates the verify command
func NewVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <address> [constructor-args...]",
		Short: "Verify a deployed contract on the block explorer",
		Long: `Submit a deployed contract's source to the network's block explorer.

Verification failures are reported but never fail the command. Constructor
arguments default to the ones configured in deploy.toml.

Examples:
  marketplace-deploy verify 0x5FbDB2315678afecb367f032d93F642f64180aa3 --network sepolia
  marketplace-deploy verify 0x1234... 0xFeeRecipient 250 --contract src/Marketplace.sol:Marketplace`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			rawArgs := args[1:]
			if len(rawArgs) == 0 {
				rawArgs = app.Config.ConstructorArgs
			}

			renderer := render.NewVerifyRenderer(cmd.OutOrStdout(), app.Config.Debug)
			renderer.RenderStart()
			outcome := app.VerifyContract.Run(cmd.Context(), usecase.VerifyParams{
				Address:      args[0],
				ContractName: app.Config.Contract,
				RawArgs:      rawArgs,
			})
			return renderer.Render(outcome)
		},
	}

	cmd.Flags().String("contract", "", "Contract name or path:name that was deployed (default \"Marketplace\")")
	return cmd
}
