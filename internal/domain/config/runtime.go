package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot    string
	DataDir        string
	ArtifactsDir   string
	DeploymentsDir string

	// Selected network, never nil after Provider succeeds
	Network *Network
	// Proxy is proxies[Network.Name]; empty when the map has no entry
	Proxy string

	// All configured networks and the static proxies map
	Networks map[string]*Network
	Proxies  map[string]string

	GasReporter GasReporterConfig
	Etherscan   EtherscanConfig

	// ContractOverride is the CONTRACT process variable. It wins over the
	// value recorded in a network env file.
	ContractOverride string

	// Execution settings
	Debug          bool
	NonInteractive bool
	Timeout        time.Duration

	// Config source tracking
	ConfigSource string // "tabdeploy.toml" or "defaults"
}

// Network represents network configuration
type Network struct {
	Name     string        `json:"name" yaml:"name"`
	RPCURL   string        `json:"rpcUrl" yaml:"rpcUrl"`
	ChainID  uint64        `json:"chainId,omitempty" yaml:"chainId,omitempty"`
	Accounts []string      `json:"-" yaml:"-"`
	Local    bool          `json:"local" yaml:"local"`
	Mining   *MiningConfig `json:"mining,omitempty" yaml:"mining,omitempty"`
}

// MiningConfig controls block production of a local development node
type MiningConfig struct {
	Auto bool `json:"auto" yaml:"auto"`
	// Interval is [min, max] milliseconds between blocks when Auto is off
	Interval []uint64 `json:"interval,omitempty" yaml:"interval,omitempty"`
}

// GasReporterConfig controls the end-of-command gas table
type GasReporterConfig struct {
	Enabled  bool   `json:"enabled" yaml:"enabled"`
	Currency string `json:"currency" yaml:"currency"`
}

// EtherscanConfig holds block explorer credentials
type EtherscanConfig struct {
	APIKey string `json:"-" yaml:"-"`
}
