package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/marketplace-deploy/internal/domain/config"
)

// flagKeys maps flag names whose viper key differs from the flag name
var flagKeys = map[string]string{
	"arg": "args",
}

// Provider creates RuntimeConfig for Wire dependency injection.
// ctx bounds the chain ID lookup of the selected network.
func Provider(ctx context.Context, v *viper.Viper) (*config.RuntimeConfig, error) {
	// Get project root from viper
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}
	projectRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}

	loadEnvFiles(projectRoot)

	foundryConfig, err := loadFoundryConfig(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load foundry config: %w", err)
	}

	deployFile, err := loadDeployFile(projectRoot)
	if err != nil {
		return nil, err
	}
	applyDeployFileDefaults(v, deployFile)

	cfg := &config.RuntimeConfig{
		ProjectRoot:       projectRoot,
		OutDir:            outDir(projectRoot, foundryConfig),
		Contract:          v.GetString("contract"),
		ConstructorArgs:   v.GetStringSlice("args"),
		Accounts:          resolveAccounts(deployFile),
		Debug:             v.GetBool("debug"),
		NonInteractive:    v.GetBool("non_interactive"),
		AssumeYes:         v.GetBool("yes"),
		VerifyAfterDeploy: v.GetBool("verify"),
		Timeout:           v.GetDuration("timeout"),
		FoundryConfig:     foundryConfig,
		DeployFile:        deployFile,
	}

	if v.GetBool("offline") {
		return cfg, nil
	}

	// Resolve network
	networkName := v.GetString("network")
	network, err := NewNetworkResolver(foundryConfig).Resolve(ctx, networkName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve network %s: %w", networkName, err)
	}
	cfg.Network = network

	return cfg, nil
}

// applyDeployFileDefaults layers deploy.toml between built-in defaults and env/flags
func applyDeployFileDefaults(v *viper.Viper, file *config.DeployFileConfig) {
	if file == nil {
		return
	}
	if file.Contract != "" {
		v.SetDefault("contract", file.Contract)
	}
	if file.Network != "" {
		v.SetDefault("network", file.Network)
	}
	if len(file.Args) > 0 {
		v.SetDefault("args", file.Args)
	}
	if file.Timeout != "" {
		v.SetDefault("timeout", file.Timeout)
	}
	if file.Verify.AfterDeploy {
		v.SetDefault("verify", true)
	}
}

// FindProjectRoot walks up from current directory to find foundry.toml
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		foundryToml := filepath.Join(dir, "foundry.toml")
		if _, err := os.Stat(foundryToml); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root without finding foundry.toml
			return "", fmt.Errorf("not in a Foundry project (foundry.toml not found)")
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up environment variables
	v.SetEnvPrefix("DEPLOY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("contract", config.DefaultContract)
	v.SetDefault("network", DefaultNetwork)
	v.SetDefault("timeout", "5m")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err := v.BindPFlag(flagKey(f.Name), f); err != nil {
			panic(err)
		}
	})

	return v
}

// flagKey converts a flag name into the viper key it is bound to
func flagKey(name string) string {
	if key, ok := flagKeys[name]; ok {
		return key
	}
	return strings.ReplaceAll(name, "-", "_")
}
