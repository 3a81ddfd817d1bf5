package config

// ProjectFileConfig represents the tabdeploy.toml configuration file
type ProjectFileConfig struct {
	DefaultNetwork string                       `toml:"default_network,omitempty"`
	Artifacts      string                       `toml:"artifacts,omitempty"`
	Deployments    string                       `toml:"deployments,omitempty"`
	Networks       map[string]NetworkFileConfig `toml:"networks"`
	Proxies        map[string]string            `toml:"proxies"`
	GasReporter    *GasReporterFileConfig       `toml:"gas_reporter,omitempty"`
	Etherscan      *EtherscanFileConfig         `toml:"etherscan,omitempty"`
}

// NetworkFileConfig represents a [networks.<name>] section
type NetworkFileConfig struct {
	URL      string            `toml:"url"`
	ChainID  uint64            `toml:"chain_id,omitempty"`
	Accounts []string          `toml:"accounts,omitempty"`
	Local    *bool             `toml:"local,omitempty"`
	Mining   *MiningFileConfig `toml:"mining,omitempty"`
}

// MiningFileConfig represents a [networks.<name>.mining] section
type MiningFileConfig struct {
	Auto     *bool    `toml:"auto,omitempty"`
	Interval []uint64 `toml:"interval,omitempty"`
}

// GasReporterFileConfig represents the [gas_reporter] section
type GasReporterFileConfig struct {
	Enabled  *bool  `toml:"enabled,omitempty"`
	Currency string `toml:"currency,omitempty"`
}

// EtherscanFileConfig represents the [etherscan] section
type EtherscanFileConfig struct {
	APIKey string `toml:"api_key"`
}
