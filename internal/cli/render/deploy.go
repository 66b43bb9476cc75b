package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/trebuchet-org/marketplace-deploy/internal/usecase"
)

// DeployRenderer renders the result of a deployment
type DeployRenderer struct {
	out     io.Writer
	verbose bool
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer, verbose bool) *DeployRenderer {
	return &DeployRenderer{
		out:     out,
		verbose: verbose,
	}
}

// Render prints the deployed address, followed by transaction details in verbose mode
func (r *DeployRenderer) Render(result *usecase.DeployResult) error {
	fmt.Fprintf(r.out, "%s contract has been deployed at %s\n", result.ContractName, result.ContractAddress)

	if !r.verbose {
		return nil
	}

	faint := color.New(color.Faint)
	if result.Network != nil {
		faint.Fprintf(r.out, "  Network:     %s (chain %d)\n", result.Network.Name, result.Network.ChainID)
	}
	if result.Deployer != nil {
		faint.Fprintf(r.out, "  Deployer:    %s (%s)\n", result.Deployer.Address, result.Deployer.Name)
	}
	if result.TransactionHash != "" {
		faint.Fprintf(r.out, "  Transaction: %s\n", result.TransactionHash)
	}
	if result.BlockNumber > 0 {
		faint.Fprintf(r.out, "  Block:       %d\n", result.BlockNumber)
	}
	return nil
}
