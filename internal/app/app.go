package app

import (
	"github.com/tablelandnetwork/tabdeploy/internal/domain/config"
	"github.com/tablelandnetwork/tabdeploy/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Use cases
	DeployProxy      *usecase.DeployProxy
	DeployGovernance *usecase.DeployGovernance
	DeployVRF        *usecase.DeployVRF
	UpgradeProxy     *usecase.UpgradeProxy
	ShowProxy        *usecase.ShowProxy
	ListAccounts     *usecase.ListAccounts
	ListNetworks     *usecase.ListNetworks
	ShowConfig       *usecase.ShowConfig
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	deployProxy *usecase.DeployProxy,
	deployGovernance *usecase.DeployGovernance,
	deployVRF *usecase.DeployVRF,
	upgradeProxy *usecase.UpgradeProxy,
	showProxy *usecase.ShowProxy,
	listAccounts *usecase.ListAccounts,
	listNetworks *usecase.ListNetworks,
	showConfig *usecase.ShowConfig,
) (*App, error) {
	return &App{
		Config:           cfg,
		DeployProxy:      deployProxy,
		DeployGovernance: deployGovernance,
		DeployVRF:        deployVRF,
		UpgradeProxy:     upgradeProxy,
		ShowProxy:        showProxy,
		ListAccounts:     listAccounts,
		ListNetworks:     listNetworks,
		ShowConfig:       showConfig,
	}, nil
}
