package verification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/trebuchet-org/marketplace-deploy/internal/domain"
	"github.com/trebuchet-org/marketplace-deploy/internal/domain/config"
	"github.com/trebuchet-org/marketplace-deploy/internal/domain/models"
	"github.com/trebuchet-org/marketplace-deploy/internal/usecase"
)

// alreadyVerifiedMarkers are matched case-insensitively against explorer output.
// The second spelling is a typo some explorers return verbatim.
var alreadyVerifiedMarkers = []string{"already verified", "already veridied"}

// CommandRunner runs an external command in dir and returns its combined output
type CommandRunner func(ctx context.Context, dir string, name string, args ...string) ([]byte, error)

func runCommand(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// ConstructorEncoder ABI encodes constructor arguments for a named contract
type ConstructorEncoder interface {
	EncodeConstructorArgs(ctx context.Context, contractName string, args []any) (string, error)
}

// ForgeVerifier verifies contracts through `forge verify-contract`
type ForgeVerifier struct {
	projectRoot string
	contracts   usecase.ContractRepository
	encoder     ConstructorEncoder
	run         CommandRunner
	log         *slog.Logger
}

// NewForgeVerifier creates a new forge-backed verifier
func NewForgeVerifier(
	cfg *config.RuntimeConfig,
	contracts usecase.ContractRepository,
	encoder ConstructorEncoder,
	log *slog.Logger,
) *ForgeVerifier {
	return &ForgeVerifier{
		projectRoot: cfg.ProjectRoot,
		contracts:   contracts,
		encoder:     encoder,
		run:         runCommand,
		log:         log.With("component", "verifier"),
	}
}

// Verify submits the contract to the network's explorer and classifies the answer
func (v *ForgeVerifier) Verify(ctx context.Context, req *models.VerificationRequest, network *config.Network) (*models.VerificationOutcome, error) {
	if network == nil {
		return nil, domain.ErrNetworkNotConfigured
	}

	contract, err := v.contracts.GetContract(ctx, req.ContractName)
	if err != nil {
		return nil, err
	}

	encodedArgs, err := v.encoder.EncodeConstructorArgs(ctx, req.ContractName, req.ConstructorArguments)
	if err != nil {
		return nil, err
	}

	args := buildVerifyArgs(req.Address, contract, network, encodedArgs)
	v.log.Debug("running forge", "args", redact(args))

	output, runErr := v.run(ctx, v.projectRoot, "forge", args...)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	return classify(string(output), runErr, explorerURL(network, req.Address)), nil
}

// buildVerifyArgs builds the forge verify-contract args. Networks without an explorer
// API key are verified on Sourcify.
func buildVerifyArgs(address string, contract *models.Contract, network *config.Network, constructorArgs string) []string {
	constructorArgs = strings.TrimPrefix(constructorArgs, "0x")

	args := []string{
		"verify-contract",
		address,
		contract.FullyQualifiedName(),
		"--chain-id", fmt.Sprintf("%d", network.ChainID),
		"--watch",
	}

	if network.ExplorerAPIKey != "" {
		if network.VerifierURL != "" {
			args = append(args, "--verifier-url", network.VerifierURL)
		}
		args = append(args, "--etherscan-api-key", network.ExplorerAPIKey)
	} else {
		args = append(args, "--verifier", "sourcify")
	}
	if version := contract.CompilerVersion(); version != "" {
		args = append(args, "--compiler-version", version)
	}
	if constructorArgs != "" {
		args = append(args, "--constructor-args", constructorArgs)
	}

	return args
}

// classify maps forge's output and exit status to a verification outcome
func classify(output string, runErr error, url string) *models.VerificationOutcome {
	lower := strings.ToLower(output)
	if runErr != nil {
		lower += " " + strings.ToLower(runErr.Error())
	}
	for _, marker := range alreadyVerifiedMarkers {
		if strings.Contains(lower, marker) {
			return models.AlreadyVerified(url)
		}
	}

	if runErr == nil {
		return models.Verified(url)
	}

	reason := strings.TrimSpace(output)
	var exitErr *exec.ExitError
	if reason == "" && !errors.As(runErr, &exitErr) {
		reason = runErr.Error()
	}
	return models.VerificationFailed(reason)
}

func explorerURL(network *config.Network, address string) string {
	if network.ExplorerURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/address/%s#code", strings.TrimSuffix(network.ExplorerURL, "/"), address)
}

func redact(args []string) string {
	out := make([]string, len(args))
	copy(out, args)
	for i := 0; i < len(out)-1; i++ {
		if out[i] == "--etherscan-api-key" {
			out[i+1] = "***"
		}
	}
	return strings.Join(out, " ")
}

var _ usecase.ContractVerifier = (*ForgeVerifier)(nil)
