package usecase_test

import (
	"context"
	"log/slog"

	"github.com/stretchr/testify/mock"
	"github.com/trebuchet-org/marketplace-deploy/internal/domain/config"
	"github.com/trebuchet-org/marketplace-deploy/internal/domain/models"
	"github.com/trebuchet-org/marketplace-deploy/internal/usecase"
)

var discardLogger = slog.New(slog.DiscardHandler)

// MockChainClient is a mock implementation of ChainClient
type MockChainClient struct {
	mock.Mock
}

func (m *MockChainClient) Signers(ctx context.Context) ([]*models.Signer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Signer), args.Error(1)
}

func (m *MockChainClient) ContractFactory(ctx context.Context, contractName string, signer *models.Signer) (usecase.ContractFactory, error) {
	args := m.Called(ctx, contractName, signer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(usecase.ContractFactory), args.Error(1)
}

// MockContractFactory is a mock implementation of ContractFactory
type MockContractFactory struct {
	mock.Mock
}

func (m *MockContractFactory) Deploy(ctx context.Context, constructorArgs ...any) (usecase.PendingDeployment, error) {
	args := m.Called(ctx, constructorArgs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(usecase.PendingDeployment), args.Error(1)
}

// MockPendingDeployment is a mock implementation of PendingDeployment
type MockPendingDeployment struct {
	mock.Mock
}

func (m *MockPendingDeployment) TransactionHash() string {
	return m.Called().String(0)
}

func (m *MockPendingDeployment) WaitDeployed(ctx context.Context) (*models.DeployedContract, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeployedContract), args.Error(1)
}

// MockArgsCodec is a mock implementation of ConstructorArgsCodec
type MockArgsCodec struct {
	mock.Mock
}

func (m *MockArgsCodec) ParseConstructorArgs(ctx context.Context, contractName string, raw []string) ([]any, error) {
	args := m.Called(ctx, contractName, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]any), args.Error(1)
}

// MockConfirmer is a mock implementation of DeployConfirmer
type MockConfirmer struct {
	mock.Mock
}

func (m *MockConfirmer) ConfirmDeploy(ctx context.Context, contractName string, network *config.Network, signer *models.Signer) (bool, error) {
	args := m.Called(ctx, contractName, network, signer)
	return args.Bool(0), args.Error(1)
}

// MockVerifier is a mock implementation of ContractVerifier
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context, req *models.VerificationRequest, network *config.Network) (*models.VerificationOutcome, error) {
	args := m.Called(ctx, req, network)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VerificationOutcome), args.Error(1)
}

// MockProgressSink records progress events
type MockProgressSink struct {
	events []usecase.ProgressEvent
}

func (m *MockProgressSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	m.events = append(m.events, event)
}

func (m *MockProgressSink) stages() []usecase.ExecutionStage {
	stages := make([]usecase.ExecutionStage, 0, len(m.events))
	for _, e := range m.events {
		stages = append(stages, e.Stage)
	}
	return stages
}

// MockContractRepository is a mock implementation of ContractRepository
type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) GetContract(ctx context.Context, key string) (*models.Contract, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contract), args.Error(1)
}

// MockSelector is a mock implementation of ContractSelector
type MockSelector struct {
	mock.Mock
}

func (m *MockSelector) SelectContract(ctx context.Context, name string, candidates []string) (string, error) {
	args := m.Called(ctx, name, candidates)
	return args.String(0), args.Error(1)
}
