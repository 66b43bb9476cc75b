package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/trebuchet-org/marketplace-deploy/internal/domain/config"
)

// DeployFileName is the optional per-project configuration file
const DeployFileName = "deploy.toml"

// loadDeployFile reads deploy.toml. A missing file is not an error and yields nil.
func loadDeployFile(projectRoot string) (*config.DeployFileConfig, error) {
	path := filepath.Join(projectRoot, DeployFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	var cfg config.DeployFileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", DeployFileName, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown keys in %s: %v", DeployFileName, undecoded)
	}

	return &cfg, nil
}
