//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/marketplace-deploy/internal/adapters"
	"github.com/trebuchet-org/marketplace-deploy/internal/config"
	"github.com/trebuchet-org/marketplace-deploy/internal/logging"
	"github.com/trebuchet-org/marketplace-deploy/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(ctx context.Context, v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewDeployContract,
		usecase.NewVerifyContract,
		usecase.NewListAccounts,

		// App
		NewApp,
	)
	return nil, nil
}
