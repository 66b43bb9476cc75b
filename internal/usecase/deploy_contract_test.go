package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/marketplace-deploy/internal/domain"
	"github.com/trebuchet-org/marketplace-deploy/internal/domain/config"
	"github.com/trebuchet-org/marketplace-deploy/internal/domain/models"
	"github.com/trebuchet-org/marketplace-deploy/internal/usecase"
)

var (
	localNetwork   = &config.Network{Name: "localhost", ChainID: 31337, RPCURL: "http://localhost:8545"}
	sepoliaNetwork = &config.Network{Name: "sepolia", ChainID: 11155111, RPCURL: "https://rpc.sepolia.example"}

	owner  = &models.Signer{Name: "owner", Address: "0x1111111111111111111111111111111111111111"}
	backup = &models.Signer{Name: "backup", Address: "0x2222222222222222222222222222222222222222"}

	marketplace = &models.Contract{Name: "Marketplace", Path: "src/Marketplace.sol"}
	escrow      = &models.Contract{Name: "Escrow", Path: "src/Escrow.sol"}
)

const marketplaceKey = "src/Marketplace.sol:Marketplace"

type deployFixture struct {
	cfg       *config.RuntimeConfig
	contracts *MockContractRepository
	selector  *MockSelector
	chain     *MockChainClient
	factory   *MockContractFactory
	pending   *MockPendingDeployment
	codec     *MockArgsCodec
	confirmer *MockConfirmer
	progress  *MockProgressSink
	uc        *usecase.DeployContract
}

func newDeployFixture(network *config.Network) *deployFixture {
	f := &deployFixture{
		cfg:       &config.RuntimeConfig{Network: network},
		contracts: new(MockContractRepository),
		selector:  new(MockSelector),
		chain:     new(MockChainClient),
		factory:   new(MockContractFactory),
		pending:   new(MockPendingDeployment),
		codec:     new(MockArgsCodec),
		confirmer: new(MockConfirmer),
		progress:  &MockProgressSink{},
	}
	f.contracts.On("GetContract", mock.Anything, "Marketplace").Return(marketplace, nil).Maybe()
	f.contracts.On("GetContract", mock.Anything, "Escrow").Return(escrow, nil).Maybe()
	f.uc = usecase.NewDeployContract(f.cfg, f.contracts, f.chain, f.codec, f.confirmer, f.selector, f.progress, discardLogger)
	return f
}

func TestDeployContract(t *testing.T) {
	ctx := context.Background()

	t.Run("deploys with the first signer", func(t *testing.T) {
		f := newDeployFixture(localNetwork)
		f.chain.On("Signers", ctx).Return([]*models.Signer{owner, backup}, nil)
		f.codec.On("ParseConstructorArgs", ctx, marketplaceKey, []string(nil)).Return([]any{}, nil)
		f.chain.On("ContractFactory", ctx, marketplaceKey, owner).Return(f.factory, nil)
		f.factory.On("Deploy", ctx, []any{}).Return(f.pending, nil)
		f.pending.On("TransactionHash").Return("0xfeed")
		f.pending.On("WaitDeployed", ctx).Return(&models.DeployedContract{
			Address:         "0xABC123",
			TransactionHash: "0xfeed",
			BlockNumber:     7,
		}, nil)

		result, err := f.uc.Run(ctx, usecase.DeployParams{})
		require.NoError(t, err)

		assert.Equal(t, "Marketplace", result.ContractName)
		assert.Equal(t, "0xABC123", result.ContractAddress)
		assert.Equal(t, owner, result.Deployer)
		assert.Equal(t, "0xfeed", result.TransactionHash)
		assert.Equal(t, uint64(7), result.BlockNumber)
		assert.Equal(t, localNetwork, result.Network)
		assert.Equal(t, marketplace, result.Contract)
		assert.Empty(t, result.ConstructorArgs)
		assert.Nil(t, result.Verification)

		assert.Equal(t, []usecase.ExecutionStage{
			usecase.StageSigners,
			usecase.StageBroadcasting,
			usecase.StageConfirming,
			usecase.StageCompleted,
		}, f.progress.stages())

		f.confirmer.AssertNotCalled(t, "ConfirmDeploy", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.chain.AssertExpectations(t)
		f.factory.AssertExpectations(t)
		f.pending.AssertExpectations(t)
	})

	t.Run("passes parsed constructor arguments", func(t *testing.T) {
		f := newDeployFixture(localNetwork)
		typed := []any{"fee", uint8(2)}
		f.chain.On("Signers", ctx).Return([]*models.Signer{owner}, nil)
		f.codec.On("ParseConstructorArgs", ctx, "src/Escrow.sol:Escrow", []string{"fee", "2"}).Return(typed, nil)
		f.chain.On("ContractFactory", ctx, "src/Escrow.sol:Escrow", owner).Return(f.factory, nil)
		f.factory.On("Deploy", ctx, typed).Return(f.pending, nil)
		f.pending.On("TransactionHash").Return("0x01")
		f.pending.On("WaitDeployed", ctx).Return(&models.DeployedContract{Address: "0x3333333333333333333333333333333333333333"}, nil)

		result, err := f.uc.Run(ctx, usecase.DeployParams{ContractName: "Escrow", ConstructorArgs: []string{"fee", "2"}})
		require.NoError(t, err)
		assert.Equal(t, typed, result.ConstructorArgs)
		assert.Equal(t, "Escrow", result.ContractName)
	})

	t.Run("no signing identity", func(t *testing.T) {
		f := newDeployFixture(localNetwork)
		f.chain.On("Signers", ctx).Return([]*models.Signer{}, nil)

		result, err := f.uc.Run(ctx, usecase.DeployParams{})
		assert.Nil(t, result)
		assert.ErrorIs(t, err, domain.ErrNoSigningIdentity)
		f.chain.AssertNotCalled(t, "ContractFactory", mock.Anything, mock.Anything, mock.Anything)
		assert.Equal(t, usecase.StageCompleted, f.progress.events[len(f.progress.events)-1].Stage)
	})

	t.Run("signer lookup failure", func(t *testing.T) {
		f := newDeployFixture(localNetwork)
		f.chain.On("Signers", ctx).Return(nil, errors.New("invalid private key for account deployer"))

		_, err := f.uc.Run(ctx, usecase.DeployParams{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get signers")
		assert.Contains(t, err.Error(), "invalid private key")
	})

	t.Run("missing artifact", func(t *testing.T) {
		f := newDeployFixture(localNetwork)
		f.chain.On("Signers", ctx).Return([]*models.Signer{owner}, nil)
		f.contracts.On("GetContract", ctx, "Vault").Return(nil, domain.ErrContractNotFound)

		_, err := f.uc.Run(ctx, usecase.DeployParams{ContractName: "Vault"})
		assert.ErrorIs(t, err, domain.ErrContractNotFound)
		f.chain.AssertNotCalled(t, "ContractFactory", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("factory failure is wrapped", func(t *testing.T) {
		f := newDeployFixture(localNetwork)
		f.chain.On("Signers", ctx).Return([]*models.Signer{owner}, nil)
		f.codec.On("ParseConstructorArgs", ctx, marketplaceKey, []string(nil)).Return([]any{}, nil)
		f.chain.On("ContractFactory", ctx, marketplaceKey, owner).Return(nil, domain.ErrNetworkNotConfigured)

		_, err := f.uc.Run(ctx, usecase.DeployParams{})
		assert.ErrorIs(t, err, domain.ErrNetworkNotConfigured)
		assert.Contains(t, err.Error(), "failed to get contract factory for Marketplace")
	})

	t.Run("ambiguous name is resolved interactively", func(t *testing.T) {
		f := newDeployFixture(localNetwork)
		ambiguous := domain.AmbiguousContractErr{Name: "Token", Sources: []string{"src/Token.sol", "src/v2/Token.sol"}}
		token := &models.Contract{Name: "Token", Path: "src/v2/Token.sol"}
		f.chain.On("Signers", ctx).Return([]*models.Signer{owner}, nil)
		f.contracts.On("GetContract", ctx, "Token").Return(nil, ambiguous)
		f.selector.On("SelectContract", ctx, "Token", []string{"src/Token.sol:Token", "src/v2/Token.sol:Token"}).
			Return("src/v2/Token.sol:Token", nil)
		f.contracts.On("GetContract", ctx, "src/v2/Token.sol:Token").Return(token, nil)
		f.codec.On("ParseConstructorArgs", ctx, "src/v2/Token.sol:Token", []string(nil)).Return([]any{}, nil)
		f.chain.On("ContractFactory", ctx, "src/v2/Token.sol:Token", owner).Return(f.factory, nil)
		f.factory.On("Deploy", ctx, []any{}).Return(f.pending, nil)
		f.pending.On("TransactionHash").Return("0xfeed")
		f.pending.On("WaitDeployed", ctx).Return(&models.DeployedContract{Address: "0xABC123"}, nil)

		result, err := f.uc.Run(ctx, usecase.DeployParams{ContractName: "Token"})
		require.NoError(t, err)
		assert.Equal(t, "Token", result.ContractName)
		assert.Equal(t, token, result.Contract)
		f.selector.AssertExpectations(t)
	})

	t.Run("ambiguous name fails when non-interactive", func(t *testing.T) {
		f := newDeployFixture(localNetwork)
		f.cfg.NonInteractive = true
		ambiguous := domain.AmbiguousContractErr{Name: "Listing", Sources: []string{"src/Listing.sol", "src/v2/Listing.sol"}}
		f.chain.On("Signers", ctx).Return([]*models.Signer{owner}, nil)
		f.contracts.On("GetContract", ctx, "Listing").Return(nil, ambiguous)

		_, err := f.uc.Run(ctx, usecase.DeployParams{ContractName: "Listing"})
		var target domain.AmbiguousContractErr
		assert.ErrorAs(t, err, &target)
		f.selector.AssertNotCalled(t, "SelectContract", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("confirmation wait failure propagates", func(t *testing.T) {
		f := newDeployFixture(localNetwork)
		f.chain.On("Signers", ctx).Return([]*models.Signer{owner}, nil)
		f.codec.On("ParseConstructorArgs", ctx, marketplaceKey, []string(nil)).Return([]any{}, nil)
		f.chain.On("ContractFactory", ctx, marketplaceKey, owner).Return(f.factory, nil)
		f.factory.On("Deploy", ctx, []any{}).Return(f.pending, nil)
		f.pending.On("TransactionHash").Return("0xfeed")
		f.pending.On("WaitDeployed", ctx).Return(nil, errors.New("transaction reverted"))

		_, err := f.uc.Run(ctx, usecase.DeployParams{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "transaction reverted")
	})

	t.Run("empty address after confirmation", func(t *testing.T) {
		f := newDeployFixture(localNetwork)
		f.chain.On("Signers", ctx).Return([]*models.Signer{owner}, nil)
		f.codec.On("ParseConstructorArgs", ctx, marketplaceKey, []string(nil)).Return([]any{}, nil)
		f.chain.On("ContractFactory", ctx, marketplaceKey, owner).Return(f.factory, nil)
		f.factory.On("Deploy", ctx, []any{}).Return(f.pending, nil)
		f.pending.On("TransactionHash").Return("0xfeed")
		f.pending.On("WaitDeployed", ctx).Return(&models.DeployedContract{}, nil)

		_, err := f.uc.Run(ctx, usecase.DeployParams{})
		assert.ErrorIs(t, err, domain.ErrEmptyAddress)
	})

	t.Run("asks before broadcasting to a public network", func(t *testing.T) {
		f := newDeployFixture(sepoliaNetwork)
		f.chain.On("Signers", ctx).Return([]*models.Signer{owner}, nil)
		f.codec.On("ParseConstructorArgs", ctx, marketplaceKey, []string(nil)).Return([]any{}, nil)
		f.confirmer.On("ConfirmDeploy", ctx, "Marketplace", sepoliaNetwork, owner).Return(false, nil)

		_, err := f.uc.Run(ctx, usecase.DeployParams{})
		assert.ErrorIs(t, err, domain.ErrDeploymentCancelled)
		f.chain.AssertNotCalled(t, "ContractFactory", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("non-interactive skips the prompt", func(t *testing.T) {
		f := newDeployFixture(sepoliaNetwork)
		f.cfg.NonInteractive = true
		f.chain.On("Signers", ctx).Return([]*models.Signer{owner}, nil)
		f.codec.On("ParseConstructorArgs", ctx, marketplaceKey, []string(nil)).Return([]any{}, nil)
		f.chain.On("ContractFactory", ctx, marketplaceKey, owner).Return(f.factory, nil)
		f.factory.On("Deploy", ctx, []any{}).Return(f.pending, nil)
		f.pending.On("TransactionHash").Return("0xfeed")
		f.pending.On("WaitDeployed", ctx).Return(&models.DeployedContract{Address: "0xABC123"}, nil)

		result, err := f.uc.Run(ctx, usecase.DeployParams{})
		require.NoError(t, err)
		assert.Equal(t, "0xABC123", result.ContractAddress)
		f.confirmer.AssertNotCalled(t, "ConfirmDeploy", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
