package config

// DeployFileConfig represents deploy.toml at the project root
type DeployFileConfig struct {
	Contract string          `toml:"contract,omitempty"`
	Network  string          `toml:"network,omitempty"`
	Args     []string        `toml:"args,omitempty"`
	Timeout  string          `toml:"timeout,omitempty"`
	Accounts []AccountConfig `toml:"accounts"`
	Verify   VerifyConfig    `toml:"verify"`
}

// AccountConfig represents one entry of the ordered [[accounts]] array.
// The first entry is the deployer.
type AccountConfig struct {
	Name       string `toml:"name,omitempty"`
	PrivateKey string `toml:"private_key"` //nolint:gosec // holds env var reference, not a literal secret
}

// VerifyConfig represents the [verify] section of deploy.toml
type VerifyConfig struct {
	AfterDeploy bool `toml:"after_deploy"`
}
