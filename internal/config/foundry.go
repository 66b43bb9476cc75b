package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/trebuchet-org/marketplace-deploy/internal/domain/config"
)

const defaultFoundryProfile = "default"

// loadEnvFiles loads .env and .env.local so ${VAR} references in TOML files expand.
// Variables already present in the process environment win.
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				// Log warning but don't fail
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// loadFoundryConfig loads and parses foundry.toml, expanding env references
// in RPC endpoints and etherscan settings
func loadFoundryConfig(projectRoot string) (*config.FoundryConfig, error) {
	foundryPath := filepath.Join(projectRoot, "foundry.toml")

	var cfg config.FoundryConfig
	if _, err := toml.DecodeFile(foundryPath, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse foundry.toml: %w", err)
	}

	if cfg.RpcEndpoints == nil {
		cfg.RpcEndpoints = make(map[string]string)
	}
	for name, url := range cfg.RpcEndpoints {
		cfg.RpcEndpoints[name] = os.ExpandEnv(url)
	}

	if cfg.Etherscan == nil {
		cfg.Etherscan = make(map[string]config.EtherscanConfig)
	}
	for network, ec := range cfg.Etherscan {
		ec.Key = os.ExpandEnv(ec.Key)
		ec.URL = os.ExpandEnv(ec.URL)
		cfg.Etherscan[network] = ec
	}

	return &cfg, nil
}

// outDir returns the absolute artifact directory of the default profile
func outDir(projectRoot string, foundryConfig *config.FoundryConfig) string {
	out := "out"
	if profile, ok := foundryConfig.Profile[defaultFoundryProfile]; ok && profile.OutPath != "" {
		out = profile.OutPath
	}
	if filepath.IsAbs(out) {
		return out
	}
	return filepath.Join(projectRoot, out)
}
