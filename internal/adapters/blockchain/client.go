package blockchain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/samber/lo"
	abicodec "github.com/trebuchet-org/marketplace-deploy/internal/adapters/abi"
	"github.com/trebuchet-org/marketplace-deploy/internal/domain"
	"github.com/trebuchet-org/marketplace-deploy/internal/domain/config"
	"github.com/trebuchet-org/marketplace-deploy/internal/domain/models"
	"github.com/trebuchet-org/marketplace-deploy/internal/usecase"
)

// Backend is the subset of an RPC client needed to deploy and confirm contracts
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
}

// Dialer opens a Backend for an RPC URL
type Dialer func(ctx context.Context, rpcURL string) (Backend, error)

func dialEthClient(ctx context.Context, rpcURL string) (Backend, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}
	return client, nil
}

type signerKey struct {
	signer *models.Signer
	key    *ecdsa.PrivateKey
}

// Client implements the chain collaborator on top of go-ethereum. Private keys from
// the configured accounts stay inside the client; callers only see signer addresses.
type Client struct {
	network   *config.Network
	accounts  []config.AccountConfig
	contracts usecase.ContractRepository
	log       *slog.Logger
	dial      Dialer

	mu      sync.Mutex
	backend Backend
	chainID *big.Int
	signers []signerKey
}

// NewClient creates a new chain client. The RPC connection is opened on first use.
func NewClient(cfg *config.RuntimeConfig, contracts usecase.ContractRepository, log *slog.Logger) *Client {
	return &Client{
		network:   cfg.Network,
		accounts:  cfg.Accounts,
		contracts: contracts,
		log:       log.With("component", "blockchain"),
		dial:      dialEthClient,
	}
}

// Signers returns the configured signing identities in declaration order
func (c *Client) Signers(ctx context.Context) ([]*models.Signer, error) {
	keys, err := c.loadSigners()
	if err != nil {
		return nil, err
	}
	return lo.Map(keys, func(k signerKey, _ int) *models.Signer { return k.signer }), nil
}

// ContractFactory prepares a deployment of the named contract signed by signer
func (c *Client) ContractFactory(ctx context.Context, contractName string, signer *models.Signer) (usecase.ContractFactory, error) {
	key, err := c.keyFor(signer)
	if err != nil {
		return nil, err
	}

	contract, err := c.contracts.GetContract(ctx, contractName)
	if err != nil {
		return nil, err
	}
	if len(contract.Artifact.Bytecode.LinkReferences) > 0 {
		return nil, fmt.Errorf("contract %s has unlinked library references", contract.FullyQualifiedName())
	}
	parsedABI, err := abicodec.ParseContractABI(contract)
	if err != nil {
		return nil, err
	}

	backend, chainID, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	opts, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor for %s: %w", signer.Name, err)
	}

	return &contractFactory{
		contract: contract,
		abi:      *parsedABI,
		bytecode: common.FromHex(contract.Artifact.Bytecode.Object),
		opts:     opts,
		backend:  backend,
		log:      c.log,
	}, nil
}

// connect dials the configured network once and checks that the endpoint serves the
// expected chain
func (c *Client) connect(ctx context.Context) (Backend, *big.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.backend != nil {
		return c.backend, c.chainID, nil
	}
	if c.network == nil || c.network.RPCURL == "" {
		return nil, nil, domain.ErrNetworkNotConfigured
	}

	c.log.Debug("dialing RPC", "network", c.network.Name, "url", c.network.RPCURL)
	backend, err := c.dial(ctx, c.network.RPCURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}

	chainID, err := backend.ChainID(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	if c.network.ChainID != 0 && chainID.Uint64() != c.network.ChainID {
		return nil, nil, fmt.Errorf("chain ID mismatch: expected %d, got %d", c.network.ChainID, chainID.Uint64())
	}

	c.backend = backend
	c.chainID = chainID
	return backend, chainID, nil
}

func (c *Client) loadSigners() ([]signerKey, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.signers != nil {
		return c.signers, nil
	}

	signers := make([]signerKey, 0, len(c.accounts))
	for _, account := range c.accounts {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(account.PrivateKey, "0x"))
		if err != nil {
			return nil, fmt.Errorf("invalid private key for account %s: %w", account.Name, err)
		}
		signers = append(signers, signerKey{
			signer: &models.Signer{
				Name:    account.Name,
				Address: crypto.PubkeyToAddress(key.PublicKey).Hex(),
			},
			key: key,
		})
	}

	c.signers = signers
	return signers, nil
}

func (c *Client) keyFor(signer *models.Signer) (*ecdsa.PrivateKey, error) {
	if signer == nil {
		return nil, domain.ErrNoSigningIdentity
	}
	keys, err := c.loadSigners()
	if err != nil {
		return nil, err
	}
	match, ok := lo.Find(keys, func(k signerKey) bool {
		return strings.EqualFold(k.signer.Address, signer.Address)
	})
	if !ok {
		return nil, fmt.Errorf("%w: no key for %s", domain.ErrNoSigningIdentity, signer.Address)
	}
	return match.key, nil
}

var _ usecase.ChainClient = (*Client)(nil)
