package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/trebuchet-org/marketplace-deploy/internal/domain/config"
)

// PrivateKeyEnv is consulted when deploy.toml lists no accounts
const PrivateKeyEnv = "PRIVATE_KEY"

// resolveAccounts expands ${VAR} references in the ordered account list and drops
// entries whose key is empty after expansion. Order is preserved: the first entry signs.
func resolveAccounts(file *config.DeployFileConfig) []config.AccountConfig {
	var declared []config.AccountConfig
	if file != nil {
		declared = file.Accounts
	}

	accounts := lo.FilterMap(declared, func(acc config.AccountConfig, i int) (config.AccountConfig, bool) {
		key := strings.TrimSpace(os.ExpandEnv(acc.PrivateKey))
		if key == "" {
			return config.AccountConfig{}, false
		}
		name := acc.Name
		if name == "" {
			name = fmt.Sprintf("account%d", i)
		}
		return config.AccountConfig{Name: name, PrivateKey: key}, true
	})

	if len(accounts) == 0 {
		if key := strings.TrimSpace(os.Getenv(PrivateKeyEnv)); key != "" {
			accounts = append(accounts, config.AccountConfig{Name: "deployer", PrivateKey: key})
		}
	}

	return accounts
}
