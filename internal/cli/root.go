package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/marketplace-deploy/internal/adapters/progress"
	"github.com/trebuchet-org/marketplace-deploy/internal/app"
	"github.com/trebuchet-org/marketplace-deploy/internal/config"
	"github.com/trebuchet-org/marketplace-deploy/internal/usecase"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"

	// offlineAnnotation marks commands that never talk to the network
	offlineAnnotation = "offline"
)

// AppFactory builds the application container for a command invocation
type AppFactory func(ctx context.Context, v *viper.Viper, sink usecase.ProgressSink) (*app.App, error)

// NewRootCmd creates the root command. Running it without a subcommand deploys.
func NewRootCmd() *cobra.Command {
	return newRootCmd(app.InitApp)
}

func newRootCmd(factory AppFactory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "marketplace-deploy",
		Short: "Deploy the Marketplace contract to an EVM network",
		Long: `marketplace-deploy deploys a Foundry-compiled contract (Marketplace by default)
with the first configured account, waits for confirmation and prints its address.

Configuration is read from foundry.toml, deploy.toml, .env and DEPLOY_* environment variables.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			v := config.SetupViper(cmd)
			if cmd.Annotations[offlineAnnotation] == "true" {
				v.Set("offline", true)
			}
			if os.Getenv("CI") == "true" {
				v.Set("non_interactive", true)
			}

			appInstance, err := factory(cmd.Context(), v, newProgressSink(cmd, v))
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)
			return nil
		},
		RunE: runDeploy,
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network name from foundry.toml [rpc_endpoints] or an RPC URL (default \"localhost\")")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().String("project-root", "", "Foundry project root (defaults to the nearest directory with foundry.toml)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Abort after this long, 0 disables (default 5m)")

	addDeployFlags(rootCmd)

	rootCmd.AddCommand(
		NewDeployCmd(),
		NewVerifyCmd(),
		NewAccountsCmd(),
		NewVersionCmd(),
	)

	return rootCmd
}

// newProgressSink shows a spinner on interactive terminals and stays quiet otherwise
func newProgressSink(cmd *cobra.Command, v *viper.Viper) usecase.ProgressSink {
	interactive := !v.GetBool("non_interactive") && isatty.IsTerminal(os.Stderr.Fd())
	switch {
	case interactive:
		return progress.NewSpinnerSink(cmd.ErrOrStderr(), true)
	case v.GetBool("debug"):
		return progress.NewSpinnerSink(cmd.ErrOrStderr(), false)
	default:
		return progress.NewNopSink()
	}
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
