package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/marketplace-deploy/internal/domain/models"
)

// ListAccounts lists the configured signing identities in signing order
type ListAccounts struct {
	chain ChainClient
}

// NewListAccounts creates a new list accounts use case
func NewListAccounts(chain ChainClient) *ListAccounts {
	return &ListAccounts{chain: chain}
}

// Run returns the signers; the first one deploys
func (l *ListAccounts) Run(ctx context.Context) ([]*models.Signer, error) {
	signers, err := l.chain.Signers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get signers: %w", err)
	}
	return signers, nil
}
