package app

import (
	"log/slog"

	"github.com/trebuchet-org/marketplace-deploy/internal/domain/config"
	"github.com/trebuchet-org/marketplace-deploy/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Logger *slog.Logger

	// Use cases
	DeployContract *usecase.DeployContract
	VerifyContract *usecase.VerifyContract
	ListAccounts   *usecase.ListAccounts
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	logger *slog.Logger,
	deployContract *usecase.DeployContract,
	verifyContract *usecase.VerifyContract,
	listAccounts *usecase.ListAccounts,
) (*App, error) {
	return &App{
		Config:         cfg,
		Logger:         logger,
		DeployContract: deployContract,
		VerifyContract: verifyContract,
		ListAccounts:   listAccounts,
	}, nil
}
