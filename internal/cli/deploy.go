package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/marketplace-deploy/internal/cli/render"
	"github.com/trebuchet-org/marketplace-deploy/internal/usecase"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the contract with the first configured account",
		Long: `Deploy a compiled contract and print its address once the chain confirms it.

Examples:
  marketplace-deploy                                  # Deploy Marketplace to localhost
  marketplace-deploy deploy --network sepolia         # Deploy to a foundry.toml endpoint
  marketplace-deploy deploy --arg 0xFeeRecipient --arg 250
  marketplace-deploy deploy --network sepolia --verify --yes`,
		Args: cobra.NoArgs,
		RunE: runDeploy,
	}

	addDeployFlags(cmd)
	return cmd
}

func addDeployFlags(cmd *cobra.Command) {
	cmd.Flags().String("contract", "", "Contract name or path:name to deploy (default \"Marketplace\")")
	cmd.Flags().StringArray("arg", nil, "Constructor argument, repeat in declaration order")
	cmd.Flags().Bool("verify", false, "Verify the contract on the block explorer after deploying")
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt for non-local networks")
}

func runDeploy(cmd *cobra.Command, args []string) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	result, err := app.DeployContract.Run(ctx, usecase.DeployParams{
		ContractName:    app.Config.Contract,
		ConstructorArgs: app.Config.ConstructorArgs,
	})
	if err != nil {
		return err
	}

	if err := render.NewDeployRenderer(cmd.OutOrStdout(), app.Config.Debug).Render(result); err != nil {
		return err
	}

	if !app.Config.VerifyAfterDeploy {
		return nil
	}

	contractKey := result.ContractName
	if result.Contract != nil {
		contractKey = result.Contract.FullyQualifiedName()
	}

	verifyRenderer := render.NewVerifyRenderer(cmd.OutOrStdout(), app.Config.Debug)
	verifyRenderer.RenderStart()
	result.Verification = app.VerifyContract.Run(ctx, usecase.VerifyParams{
		Address:      result.ContractAddress,
		ContractName: contractKey,
		Args:         result.ConstructorArgs,
	})
	return verifyRenderer.Render(result.Verification)
}
