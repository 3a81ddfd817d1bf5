package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/samber/lo"
	"github.com/tablelandnetwork/tabdeploy/internal/domain/config"
)

const (
	// ProjectFileName is the optional project configuration file
	ProjectFileName = "tabdeploy.toml"

	// DefaultNetwork is used when neither a flag nor the project file selects one
	DefaultNetwork = "hardhat"

	// LocalRPCURL is the endpoint of a local hardhat node or anvil
	LocalRPCURL = "http://127.0.0.1:8545"

	// DefaultArtifactsDir is where `hardhat compile` writes artifacts
	DefaultArtifactsDir = "artifacts"

	// DefaultDeploymentsDir holds the implementation manifests
	DefaultDeploymentsDir = ".deployments"
)

// defaultProjectConfig mirrors the hardhat.config.ts of the contracts repo. It is
// evaluated after .env files are loaded since some defaults depend on the
// environment.
func defaultProjectConfig() *config.ProjectFileConfig {
	autoMining := os.Getenv("HARDHAT_DISABLE_AUTO_MINING") != "true"
	reportGas := os.Getenv("REPORT_GAS") != ""

	return &config.ProjectFileConfig{
		DefaultNetwork: DefaultNetwork,
		Artifacts:      DefaultArtifactsDir,
		Deployments:    DefaultDeploymentsDir,
		Networks: map[string]config.NetworkFileConfig{
			"hardhat": {
				URL:   LocalRPCURL,
				Local: lo.ToPtr(true),
				Mining: &config.MiningFileConfig{
					Auto:     lo.ToPtr(autoMining),
					Interval: []uint64{100, 3000},
				},
			},
			"localhost": {
				URL:   LocalRPCURL,
				Local: lo.ToPtr(true),
			},
			"polygon_mumbai": {
				URL:      "https://polygon-mumbai.g.alchemy.com/v2/${POLYGON_MUMBAI_API_KEY}",
				Accounts: []string{"${PRIVATE_KEY}"},
			},
		},
		Proxies: map[string]string{
			"localhost": "0x5FC8d32690cc91D4c39d9d3abcBD16989F875707",
		},
		GasReporter: &config.GasReporterFileConfig{
			Enabled:  lo.ToPtr(reportGas),
			Currency: "USD",
		},
		Etherscan: &config.EtherscanFileConfig{
			APIKey: "${POLYGONSCAN_API_KEY}",
		},
	}
}

// loadProjectFile loads and parses tabdeploy.toml if it exists.
// Returns (nil, nil) when tabdeploy.toml does not exist.
func loadProjectFile(projectRoot string) (*config.ProjectFileConfig, error) {
	path := filepath.Join(projectRoot, ProjectFileName)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	var cfg config.ProjectFileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ProjectFileName, err)
	}

	return &cfg, nil
}

// mergeProjectConfig overlays file on base. Networks are merged field by
// field so a file can override just the url of a built-in network.
func mergeProjectConfig(base, file *config.ProjectFileConfig) *config.ProjectFileConfig {
	if file == nil {
		return base
	}

	if file.DefaultNetwork != "" {
		base.DefaultNetwork = file.DefaultNetwork
	}
	if file.Artifacts != "" {
		base.Artifacts = file.Artifacts
	}
	if file.Deployments != "" {
		base.Deployments = file.Deployments
	}

	for name, override := range file.Networks {
		current, exists := base.Networks[name]
		if !exists {
			base.Networks[name] = override
			continue
		}
		if override.URL != "" {
			current.URL = override.URL
		}
		if override.ChainID != 0 {
			current.ChainID = override.ChainID
		}
		if override.Accounts != nil {
			current.Accounts = override.Accounts
		}
		if override.Local != nil {
			current.Local = override.Local
		}
		if override.Mining != nil {
			if current.Mining == nil {
				current.Mining = &config.MiningFileConfig{}
			}
			if override.Mining.Auto != nil {
				current.Mining.Auto = override.Mining.Auto
			}
			if override.Mining.Interval != nil {
				current.Mining.Interval = override.Mining.Interval
			}
		}
		base.Networks[name] = current
	}

	for name, addr := range file.Proxies {
		base.Proxies[name] = addr
	}

	if file.GasReporter != nil {
		if file.GasReporter.Enabled != nil {
			base.GasReporter.Enabled = file.GasReporter.Enabled
		}
		if file.GasReporter.Currency != "" {
			base.GasReporter.Currency = file.GasReporter.Currency
		}
	}

	if file.Etherscan != nil && file.Etherscan.APIKey != "" {
		base.Etherscan.APIKey = file.Etherscan.APIKey
	}

	return base
}

// buildNetworks expands environment references and converts file sections
// into runtime networks. Accounts that expand to an empty string are dropped.
func buildNetworks(file *config.ProjectFileConfig) map[string]*config.Network {
	networks := make(map[string]*config.Network, len(file.Networks))

	for name, raw := range file.Networks {
		network := &config.Network{
			Name:    name,
			RPCURL:  os.ExpandEnv(raw.URL),
			ChainID: raw.ChainID,
		}

		for _, account := range raw.Accounts {
			if expanded := strings.TrimSpace(os.ExpandEnv(account)); expanded != "" {
				network.Accounts = append(network.Accounts, expanded)
			}
		}

		if raw.Local != nil {
			network.Local = *raw.Local
		} else {
			network.Local = isLoopbackURL(network.RPCURL)
		}

		if raw.Mining != nil {
			network.Mining = &config.MiningConfig{
				Auto:     raw.Mining.Auto == nil || *raw.Mining.Auto,
				Interval: raw.Mining.Interval,
			}
		}

		networks[name] = network
	}

	return networks
}

// isLoopbackURL reports whether rawURL points at this machine
func isLoopbackURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1", "::1", "0.0.0.0":
		return true
	}
	return false
}
