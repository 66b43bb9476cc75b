package blockchain

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/trebuchet-org/marketplace-deploy/internal/domain/models"
	"github.com/trebuchet-org/marketplace-deploy/internal/usecase"
)

type contractFactory struct {
	contract *models.Contract
	abi      abi.ABI
	bytecode []byte
	opts     *bind.TransactOpts
	backend  Backend
	log      *slog.Logger
}

// Deploy signs and submits the creation transaction
func (f *contractFactory) Deploy(ctx context.Context, args ...any) (usecase.PendingDeployment, error) {
	opts := *f.opts
	opts.Context = ctx

	address, tx, _, err := bind.DeployContract(&opts, f.abi, f.bytecode, f.backend, args...)
	if err != nil {
		return nil, err
	}
	f.log.Debug("deployment submitted",
		"contract", f.contract.Name,
		"from", opts.From.Hex(),
		"tx", tx.Hash().Hex(),
		"nonce", tx.Nonce(),
		"expectedAddress", address.Hex(),
	)

	return &pendingDeployment{tx: tx, expected: address, backend: f.backend, log: f.log}, nil
}

type pendingDeployment struct {
	tx       *types.Transaction
	expected common.Address
	backend  Backend
	log      *slog.Logger
}

func (p *pendingDeployment) TransactionHash() string {
	return p.tx.Hash().Hex()
}

// WaitDeployed blocks until the creation transaction is mined and code exists at the new address
func (p *pendingDeployment) WaitDeployed(ctx context.Context) (*models.DeployedContract, error) {
	address, err := bind.WaitDeployed(ctx, p.backend, p.tx)
	if err != nil {
		return nil, err
	}
	if address != p.expected {
		p.log.Warn("deployed address differs from the predicted one", "expected", p.expected.Hex(), "actual", address.Hex())
	}

	receipt, err := p.backend.TransactionReceipt(ctx, p.tx.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction receipt: %w", err)
	}

	deployed := &models.DeployedContract{
		Address:         address.Hex(),
		TransactionHash: p.tx.Hash().Hex(),
	}
	if receipt.BlockNumber != nil {
		deployed.BlockNumber = receipt.BlockNumber.Uint64()
	}
	return deployed, nil
}
