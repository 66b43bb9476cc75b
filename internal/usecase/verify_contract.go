package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/marketplace-deploy/internal/domain"
	"github.com/trebuchet-org/marketplace-deploy/internal/domain/config"
	"github.com/trebuchet-org/marketplace-deploy/internal/domain/models"
)

// VerifyContract submits a deployed contract to the block explorer for source verification.
// Failures are reported in the returned outcome and never propagate as errors.
type VerifyContract struct {
	config    *config.RuntimeConfig
	verifier  ContractVerifier
	argsCodec ConstructorArgsCodec
	progress  ProgressSink
	log       *slog.Logger
}

// NewVerifyContract creates a new verify contract use case
func NewVerifyContract(
	cfg *config.RuntimeConfig,
	verifier ContractVerifier,
	argsCodec ConstructorArgsCodec,
	progress ProgressSink,
	log *slog.Logger,
) *VerifyContract {
	return &VerifyContract{
		config:    cfg,
		verifier:  verifier,
		argsCodec: argsCodec,
		progress:  progress,
		log:       log,
	}
}

// VerifyParams identifies the deployment to verify. Args takes precedence over RawArgs;
// RawArgs are parsed against the contract's constructor.
type VerifyParams struct {
	Address      string
	ContractName string
	Args         []any
	RawArgs      []string
}

// Run performs a single verification attempt
func (v *VerifyContract) Run(ctx context.Context, params VerifyParams) *models.VerificationOutcome {
	if !common.IsHexAddress(params.Address) {
		return models.VerificationFailed(fmt.Errorf("%w: %q", domain.ErrInvalidAddress, params.Address).Error())
	}

	contractName := params.ContractName
	if contractName == "" {
		contractName = config.DefaultContract
	}

	args := params.Args
	if args == nil && len(params.RawArgs) > 0 {
		parsed, err := v.argsCodec.ParseConstructorArgs(ctx, contractName, params.RawArgs)
		if err != nil {
			return models.VerificationFailed(err.Error())
		}
		args = parsed
	}

	req := &models.VerificationRequest{
		Address:              common.HexToAddress(params.Address).Hex(),
		ContractName:         contractName,
		ConstructorArguments: args,
	}

	v.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageVerifying,
		Message: fmt.Sprintf("Verifying %s at %s", contractName, req.Address),
		Spinner: true,
	})
	outcome, err := v.verifier.Verify(ctx, req, v.config.Network)
	v.progress.OnProgress(ctx, ProgressEvent{Stage: StageCompleted})

	if err != nil {
		v.log.Debug("verification failed", "address", req.Address, "error", err)
		return models.VerificationFailed(err.Error())
	}
	if outcome == nil {
		return models.VerificationFailed("")
	}

	v.log.Debug("verification finished", "address", req.Address, "status", outcome.Status, "succeeded", outcome.Succeeded())
	return outcome
}
