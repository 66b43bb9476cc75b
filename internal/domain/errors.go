package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNoSigningIdentity is returned when no account is available to sign the deployment
	ErrNoSigningIdentity = errors.New("no signing identity available")

	// ErrEmptyAddress is returned when a confirmed deployment reports no contract address
	ErrEmptyAddress = errors.New("deployment confirmed without a contract address")

	// ErrContractNotFound is returned when a contract artifact can't be found
	ErrContractNotFound = errors.New("contract not found")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrDeploymentCancelled is returned when the user declines the broadcast prompt
	ErrDeploymentCancelled = errors.New("deployment cancelled")

	// ErrNetworkNotConfigured is returned when no RPC endpoint is known for a network
	ErrNetworkNotConfigured = errors.New("network not configured")
)

// AmbiguousContractErr is returned when a bare contract name matches more than one artifact
type AmbiguousContractErr struct {
	Name    string
	Sources []string
}

func (e AmbiguousContractErr) Error() string {
	suggestions := make([]string, 0, len(e.Sources))
	for _, source := range e.Sources {
		suggestions = append(suggestions, fmt.Sprintf("  - %s:%s", source, e.Name))
	}

	return fmt.Sprintf("multiple contracts named %s - use path:contract format to disambiguate:\n%s",
		e.Name, strings.Join(suggestions, "\n"))
}
