package interactive

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/trebuchet-org/marketplace-deploy/internal/domain/config"
	"github.com/trebuchet-org/marketplace-deploy/internal/domain/models"
	"github.com/trebuchet-org/marketplace-deploy/internal/usecase"
)

// ConfirmAdapter asks for a yes/no answer before broadcasting
type ConfirmAdapter struct {
	config *config.RuntimeConfig
	prompt func(label string) (bool, error)
}

// NewConfirmAdapter creates a new confirmation adapter
func NewConfirmAdapter(cfg *config.RuntimeConfig) *ConfirmAdapter {
	return &ConfirmAdapter{config: cfg, prompt: confirmPrompt}
}

// ConfirmDeploy describes the pending broadcast and asks whether to go ahead.
// Non-interactive sessions always confirm.
func (c *ConfirmAdapter) ConfirmDeploy(ctx context.Context, contractName string, network *config.Network, signer *models.Signer) (bool, error) {
	if c.config.NonInteractive || c.config.AssumeYes {
		return true, nil
	}
	return c.prompt(confirmLabel(contractName, network, signer))
}

func confirmLabel(contractName string, network *config.Network, signer *models.Signer) string {
	target := "unknown network"
	if network != nil {
		target = fmt.Sprintf("%s (chain %d)", network.Name, network.ChainID)
	}
	from := ""
	if signer != nil {
		from = fmt.Sprintf(" from %s", signer.Address)
	}
	return fmt.Sprintf("Deploy %s to %s%s",
		color.New(color.Bold).Sprint(contractName),
		color.New(color.FgYellow).Sprint(target),
		from,
	)
}

// confirmPrompt asks the user a yes/no question. A "no" or Ctrl-C is not an error.
func confirmPrompt(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}

	_, err := prompt.Run()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, promptui.ErrAbort), errors.Is(err, promptui.ErrInterrupt):
		return false, nil
	default:
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}
}

var _ usecase.DeployConfirmer = (*ConfirmAdapter)(nil)
