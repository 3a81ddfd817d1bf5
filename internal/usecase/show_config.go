package usecase

import (
	"context"
	"strings"

	"github.com/samber/lo"
	"github.com/tablelandnetwork/tabdeploy/internal/domain/config"
)

const redacted = "<redacted>"

// ConfigView is the printable form of the runtime configuration. Secrets
// never make it into the view.
type ConfigView struct {
	Source         string                   `yaml:"source"`
	ProjectRoot    string                   `yaml:"projectRoot"`
	Artifacts      string                   `yaml:"artifacts"`
	Deployments    string                   `yaml:"deployments"`
	Network        string                   `yaml:"network"`
	Proxy          string                   `yaml:"proxy,omitempty"`
	Contract       string                   `yaml:"contract,omitempty"`
	Timeout        string                   `yaml:"timeout"`
	NonInteractive bool                     `yaml:"nonInteractive"`
	Networks       map[string]NetworkView   `yaml:"networks"`
	Proxies        map[string]string        `yaml:"proxies,omitempty"`
	GasReporter    config.GasReporterConfig `yaml:"gasReporter"`
	Etherscan      string                   `yaml:"etherscanApiKey,omitempty"`
}

// NetworkView is a network with its account keys redacted
type NetworkView struct {
	URL      string               `yaml:"url"`
	ChainID  uint64               `yaml:"chainId,omitempty"`
	Local    bool                 `yaml:"local"`
	Accounts []string             `yaml:"accounts,omitempty"`
	Mining   *config.MiningConfig `yaml:"mining,omitempty"`
}

// ShowConfig is a use case for showing configuration
type ShowConfig struct {
	cfg *config.RuntimeConfig
}

// NewShowConfig creates a new ShowConfig use case
func NewShowConfig(cfg *config.RuntimeConfig) *ShowConfig {
	return &ShowConfig{cfg: cfg}
}

// Run executes the show config use case
func (uc *ShowConfig) Run(ctx context.Context) (*ConfigView, error) {
	cfg := uc.cfg
	view := &ConfigView{
		Source:         cfg.ConfigSource,
		ProjectRoot:    cfg.ProjectRoot,
		Artifacts:      cfg.ArtifactsDir,
		Deployments:    cfg.DeploymentsDir,
		Proxy:          cfg.Proxy,
		Contract:       cfg.ContractOverride,
		Timeout:        cfg.Timeout.String(),
		NonInteractive: cfg.NonInteractive,
		Networks:       make(map[string]NetworkView, len(cfg.Networks)),
		Proxies:        cfg.Proxies,
		GasReporter:    cfg.GasReporter,
	}
	if cfg.Network != nil {
		view.Network = cfg.Network.Name
	}
	if cfg.Etherscan.APIKey != "" {
		view.Etherscan = redacted
	}

	for name, network := range cfg.Networks {
		view.Networks[name] = NetworkView{
			URL:      redactURL(network.RPCURL),
			ChainID:  network.ChainID,
			Local:    network.Local,
			Accounts: lo.Map(network.Accounts, func(string, int) string { return redacted }),
			Mining:   network.Mining,
		}
	}

	return view, nil
}

// redactURL hides API keys embedded in the last path segment of hosted RPC
// endpoints such as https://polygon-mumbai.g.alchemy.com/v2/<key>
func redactURL(raw string) string {
	idx := strings.LastIndex(raw, "/v2/")
	if idx < 0 || idx+len("/v2/") == len(raw) {
		return raw
	}
	return raw[:idx+len("/v2/")] + redacted
}
