package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/samber/lo"
	"github.com/trebuchet-org/marketplace-deploy/internal/domain"
	"github.com/trebuchet-org/marketplace-deploy/internal/domain/config"
	"github.com/trebuchet-org/marketplace-deploy/internal/domain/models"
)

// DeployContract deploys a single compiled contract with the first available signer
type DeployContract struct {
	config    *config.RuntimeConfig
	contracts ContractRepository
	chain     ChainClient
	argsCodec ConstructorArgsCodec
	confirmer DeployConfirmer
	selector  ContractSelector
	progress  ProgressSink
	log       *slog.Logger
}

// NewDeployContract creates a new deploy contract use case
func NewDeployContract(
	cfg *config.RuntimeConfig,
	contracts ContractRepository,
	chain ChainClient,
	argsCodec ConstructorArgsCodec,
	confirmer DeployConfirmer,
	selector ContractSelector,
	progress ProgressSink,
	log *slog.Logger,
) *DeployContract {
	return &DeployContract{
		config:    cfg,
		contracts: contracts,
		chain:     chain,
		argsCodec: argsCodec,
		confirmer: confirmer,
		selector:  selector,
		progress:  progress,
		log:       log,
	}
}

// DeployParams contains the contract to deploy and its raw constructor arguments
type DeployParams struct {
	ContractName    string
	ConstructorArgs []string
}

// DeployResult wraps the deployment result with the resolved contract and the typed
// arguments that were used, so a follow-up verification submits exactly the same values
type DeployResult struct {
	*models.DeploymentResult
	Contract        *models.Contract
	ConstructorArgs []any
}

// Run deploys the contract and waits until the chain confirms its creation
func (d *DeployContract) Run(ctx context.Context, params DeployParams) (*DeployResult, error) {
	contractName := params.ContractName
	if contractName == "" {
		contractName = config.DefaultContract
	}

	d.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageSigners,
		Message: "Loading signers",
		Spinner: true,
	})

	signers, err := d.chain.Signers(ctx)
	if err != nil {
		d.stopProgress(ctx)
		return nil, fmt.Errorf("failed to get signers: %w", err)
	}
	if len(signers) == 0 {
		d.stopProgress(ctx)
		return nil, domain.ErrNoSigningIdentity
	}
	deployer := signers[0]
	d.log.Debug("using deployer", "name", deployer.Name, "address", deployer.Address)

	contract, err := d.resolveContract(ctx, contractName)
	if err != nil {
		d.stopProgress(ctx)
		return nil, err
	}
	contractName = contract.Name
	contractKey := contract.FullyQualifiedName()

	args, err := d.argsCodec.ParseConstructorArgs(ctx, contractKey, params.ConstructorArgs)
	if err != nil {
		d.stopProgress(ctx)
		return nil, fmt.Errorf("invalid constructor arguments for %s: %w", contractName, err)
	}

	if d.needsConfirmation() {
		d.stopProgress(ctx)
		ok, err := d.confirmer.ConfirmDeploy(ctx, contractName, d.config.Network, deployer)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrDeploymentCancelled
		}
	}

	factory, err := d.chain.ContractFactory(ctx, contractKey, deployer)
	if err != nil {
		d.stopProgress(ctx)
		return nil, fmt.Errorf("failed to get contract factory for %s: %w", contractName, err)
	}

	d.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageBroadcasting,
		Message: fmt.Sprintf("Deploying %s", contractName),
		Spinner: true,
	})

	pending, err := factory.Deploy(ctx, args...)
	if err != nil {
		d.stopProgress(ctx)
		return nil, fmt.Errorf("failed to deploy %s: %w", contractName, err)
	}

	d.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageConfirming,
		Message: fmt.Sprintf("Waiting for transaction %s", pending.TransactionHash()),
		Spinner: true,
	})

	deployed, err := pending.WaitDeployed(ctx)
	d.stopProgress(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for %s deployment: %w", contractName, err)
	}
	if deployed == nil || deployed.Address == "" {
		return nil, domain.ErrEmptyAddress
	}

	return &DeployResult{
		DeploymentResult: &models.DeploymentResult{
			ContractName:    contractName,
			ContractAddress: deployed.Address,
			Deployer:        deployer,
			TransactionHash: deployed.TransactionHash,
			BlockNumber:     deployed.BlockNumber,
			Network:         d.config.Network,
		},
		Contract:        contract,
		ConstructorArgs: args,
	}, nil
}

// resolveContract looks the contract up, asking the user to choose when an
// interactive session names a contract that exists in several source files
func (d *DeployContract) resolveContract(ctx context.Context, name string) (*models.Contract, error) {
	contract, err := d.contracts.GetContract(ctx, name)

	var ambiguous domain.AmbiguousContractErr
	if err == nil || !errors.As(err, &ambiguous) || d.config.NonInteractive || d.selector == nil {
		return contract, err
	}

	d.stopProgress(ctx)
	candidates := lo.Map(ambiguous.Sources, func(source string, _ int) string {
		return source + ":" + ambiguous.Name
	})
	choice, err := d.selector.SelectContract(ctx, ambiguous.Name, candidates)
	if err != nil {
		return nil, err
	}
	return d.contracts.GetContract(ctx, choice)
}

// needsConfirmation is true for interactive broadcasts to non-local networks
func (d *DeployContract) needsConfirmation() bool {
	if d.config.NonInteractive || d.config.AssumeYes {
		return false
	}
	return d.config.Network != nil && !d.config.Network.IsLocal()
}

func (d *DeployContract) stopProgress(ctx context.Context) {
	d.progress.OnProgress(ctx, ProgressEvent{Stage: StageCompleted})
}
