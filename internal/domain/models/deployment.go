package models

import (
	"github.com/trebuchet-org/marketplace-deploy/internal/domain/config"
)

// Signer is a signing identity able to authorize a transaction on the target chain.
// Key material stays inside the chain adapter.
type Signer struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// DeployedContract is what the chain reports once a deployment is confirmed
type DeployedContract struct {
	Address         string `json:"address"`
	TransactionHash string `json:"transactionHash"`
	BlockNumber     uint64 `json:"blockNumber"`
}

// DeploymentResult is the outcome of a single deploy run. It is never persisted.
type DeploymentResult struct {
	ContractName    string
	ContractAddress string
	Deployer        *Signer
	TransactionHash string
	BlockNumber     uint64
	Network         *config.Network

	// Verification is only set when verification was requested after deploying
	Verification *VerificationOutcome
}
