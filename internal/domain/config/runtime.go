package config

import (
	"time"
)

// DefaultContract is deployed when no contract is named on the command line or in deploy.toml
const DefaultContract = "Marketplace"

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	OutDir      string // Foundry artifact directory, absolute

	// Deployment target
	Contract        string
	ConstructorArgs []string
	Network         *Network // nil if not specified
	Accounts        []AccountConfig

	// Execution settings
	Debug             bool
	NonInteractive    bool
	AssumeYes         bool
	VerifyAfterDeploy bool
	Timeout           time.Duration

	// Resolved configurations
	FoundryConfig *FoundryConfig
	DeployFile    *DeployFileConfig // nil when deploy.toml is absent
}

// Network represents network configuration
type Network struct {
	ChainID        uint64 `json:"chainId"`
	Name           string `json:"name"`
	RPCURL         string `json:"rpcUrl"`
	ExplorerURL    string `json:"explorerUrl,omitempty"`
	VerifierURL    string `json:"verifierUrl,omitempty"`
	ExplorerAPIKey string `json:"-"`
}

// IsLocal reports whether the network is a local development chain (anvil, hardhat)
func (n *Network) IsLocal() bool {
	return n.ChainID == 31337 || n.ChainID == 1337
}
