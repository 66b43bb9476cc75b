package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/marketplace-deploy/internal/domain"
	"github.com/trebuchet-org/marketplace-deploy/internal/domain/config"
)

// DefaultNetwork is used when no network is given on the command line, in the environment or in deploy.toml
const DefaultNetwork = "localhost"

// builtinEndpoints are used when foundry.toml has no entry for the network
var builtinEndpoints = map[string]string{
	"localhost": "http://localhost:8545",
	"anvil":     "http://localhost:8545",
}

// ChainIDFetcher looks up the chain ID served by an RPC endpoint
type ChainIDFetcher func(ctx context.Context, rpcURL string) (uint64, error)

// NetworkResolver resolves network names to configurations
type NetworkResolver struct {
	foundryConfig *config.FoundryConfig
	fetchChainID  ChainIDFetcher
	timeout       time.Duration
}

// NewNetworkResolver creates a new network resolver that asks the RPC endpoint for its chain ID
func NewNetworkResolver(foundryConfig *config.FoundryConfig) *NetworkResolver {
	return &NetworkResolver{
		foundryConfig: foundryConfig,
		fetchChainID:  fetchChainID,
		timeout:       10 * time.Second,
	}
}

// Resolve resolves a network name (or a raw RPC URL) to its configuration
func (r *NetworkResolver) Resolve(ctx context.Context, networkName string) (*config.Network, error) {
	rpcURL, err := r.rpcURL(networkName)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	chainID, err := r.fetchChainID(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chain ID for network %s: %w", networkName, err)
	}

	network := &config.Network{
		Name:        networkName,
		RPCURL:      rpcURL,
		ChainID:     chainID,
		ExplorerURL: defaultExplorerURL(chainID),
	}

	etherscan, ok := r.foundryConfig.Etherscan[networkName]
	if ok {
		network.VerifierURL = etherscan.URL
		network.ExplorerAPIKey = etherscan.Key
	}
	if network.ExplorerAPIKey == "" {
		network.ExplorerAPIKey = os.Getenv("ETHERSCAN_API_KEY")
	}

	return network, nil
}

// rpcURL finds the endpoint for a network: foundry.toml first, then built-in defaults,
// then the name itself when it is already a URL
func (r *NetworkResolver) rpcURL(networkName string) (string, error) {
	if networkName == "" {
		return "", fmt.Errorf("network not specified")
	}

	if url, ok := r.foundryConfig.RpcEndpoints[networkName]; ok {
		if url == "" {
			return "", fmt.Errorf("%w: rpc endpoint for %s is empty (unset environment variable?)", domain.ErrNetworkNotConfigured, networkName)
		}
		return url, nil
	}

	if url, ok := builtinEndpoints[strings.ToLower(networkName)]; ok {
		return url, nil
	}

	if isRPCURL(networkName) {
		return networkName, nil
	}

	return "", fmt.Errorf("%w: '%s' not found in foundry.toml [rpc_endpoints]", domain.ErrNetworkNotConfigured, networkName)
}

func isRPCURL(s string) bool {
	for _, prefix := range []string{"http://", "https://", "ws://", "wss://"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// fetchChainID dials the endpoint and asks for eth_chainId
func fetchChainID(ctx context.Context, rpcURL string) (uint64, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get chain ID: %w", err)
	}

	return chainID.Uint64(), nil
}

// defaultExplorerURL returns the public explorer for well-known chains
func defaultExplorerURL(chainID uint64) string {
	switch chainID {
	case 1:
		return "https://etherscan.io"
	case 11155111:
		return "https://sepolia.etherscan.io"
	case 17000:
		return "https://holesky.etherscan.io"
	case 10:
		return "https://optimistic.etherscan.io"
	case 137:
		return "https://polygonscan.com"
	case 80002:
		return "https://amoy.polygonscan.com"
	case 8453:
		return "https://basescan.org"
	case 84532:
		return "https://sepolia.basescan.org"
	case 42161:
		return "https://arbiscan.io"
	case 43114:
		return "https://snowtrace.io"
	case 56:
		return "https://bscscan.com"
	case 97:
		return "https://testnet.bscscan.com"
	case 250:
		return "https://ftmscan.com"
	case 42220:
		return "https://celoscan.io"
	default:
		return ""
	}
}
