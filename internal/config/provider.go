package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tablelandnetwork/tabdeploy/internal/domain/config"
)

// projectMarkers identify a project root, checked in order
var projectMarkers = []string{
	ProjectFileName,
	"hardhat.config.ts",
	"hardhat.config.js",
}

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	// Get project root from viper
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		// Try to find project root
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	// .env must be loaded before defaults and ${VAR} expansion are evaluated
	loadDotEnv(projectRoot)

	fileCfg, err := loadProjectFile(projectRoot)
	if err != nil {
		return nil, err
	}
	source := "defaults"
	if fileCfg != nil {
		source = ProjectFileName
	}
	project := mergeProjectConfig(defaultProjectConfig(), fileCfg)

	networks := buildNetworks(project)

	networkName := v.GetString("network")
	if networkName == "" {
		networkName = project.DefaultNetwork
	}
	network, err := ResolveNetwork(networks, networkName)
	if err != nil {
		return nil, err
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        filepath.Join(projectRoot, ".tabdeploy"),
		ArtifactsDir:   resolvePath(projectRoot, project.Artifacts),
		DeploymentsDir: resolvePath(projectRoot, project.Deployments),
		Network:        network,
		Networks:       networks,
		Proxies:        project.Proxies,
		GasReporter: config.GasReporterConfig{
			Enabled:  project.GasReporter.Enabled != nil && *project.GasReporter.Enabled,
			Currency: project.GasReporter.Currency,
		},
		Etherscan: config.EtherscanConfig{
			APIKey: os.ExpandEnv(project.Etherscan.APIKey),
		},
		ContractOverride: os.Getenv("CONTRACT"),
		Debug:            v.GetBool("debug"),
		NonInteractive:   v.GetBool("non_interactive"),
		Timeout:          v.GetDuration("timeout"),
		ConfigSource:     source,
	}

	// Convenience accessor: the statically configured proxy of the selected
	// network. Deliberately unvalidated.
	cfg.Proxy = cfg.Proxies[network.Name]

	return cfg, nil
}

// FindProjectRoot walks up from current directory to find a project marker
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		for _, marker := range projectMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root without finding a marker
			return "", fmt.Errorf("not in a project (%s or hardhat.config.* not found)", ProjectFileName)
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up config file
	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, ".tabdeploy"))

	// Set up environment variables
	v.SetEnvPrefix("TABDEPLOY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("network", "")
	v.SetDefault("timeout", "5m")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if err := v.BindPFlag(key, f); err != nil {
				panic(err)
			}
		})
	}

	return v
}

func resolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
