package usecase

import (
	"context"

	"github.com/trebuchet-org/marketplace-deploy/internal/domain/config"
	"github.com/trebuchet-org/marketplace-deploy/internal/domain/models"
)

// Chain ports

// ChainClient is the chain collaborator: it hands out signing identities and
// deployment handles bound to one of them
type ChainClient interface {
	Signers(ctx context.Context) ([]*models.Signer, error)
	ContractFactory(ctx context.Context, contractName string, signer *models.Signer) (ContractFactory, error)
}

// ContractFactory is a prepared, not yet submitted deployment of one contract
type ContractFactory interface {
	Deploy(ctx context.Context, args ...any) (PendingDeployment, error)
}

// PendingDeployment is a submitted deployment transaction awaiting confirmation
type PendingDeployment interface {
	TransactionHash() string
	WaitDeployed(ctx context.Context) (*models.DeployedContract, error)
}

// ConstructorArgsCodec converts command line strings into typed constructor arguments
// using the contract's ABI
type ConstructorArgsCodec interface {
	ParseConstructorArgs(ctx context.Context, contractName string, raw []string) ([]any, error)
}

// ContractRepository finds compiled contracts by name or path:name
type ContractRepository interface {
	GetContract(ctx context.Context, key string) (*models.Contract, error)
}

// Verification ports

// ContractVerifier submits a verification request to a block explorer.
// Implementations classify the explorer's answer into a VerificationOutcome;
// a returned error means the request could not be carried out at all.
type ContractVerifier interface {
	Verify(ctx context.Context, req *models.VerificationRequest, network *config.Network) (*models.VerificationOutcome, error)
}

// Interaction ports

// DeployConfirmer asks the user before broadcasting to a non-local network
type DeployConfirmer interface {
	ConfirmDeploy(ctx context.Context, contractName string, network *config.Network, signer *models.Signer) (bool, error)
}

// ContractSelector lets the user pick one of several contracts sharing a name.
// Candidates and the returned value are in path:name form.
type ContractSelector interface {
	SelectContract(ctx context.Context, name string, candidates []string) (string, error)
}

// Progress tracking interfaces

// ExecutionStage represents a stage in the deploy process
type ExecutionStage string

const (
	StageSigners      ExecutionStage = "Signers"
	StageBroadcasting ExecutionStage = "Broadcasting"
	StageConfirming   ExecutionStage = "Confirming"
	StageVerifying    ExecutionStage = "Verifying"
	StageCompleted    ExecutionStage = "Completed"
)

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   ExecutionStage
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
