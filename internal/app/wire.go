//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/tablelandnetwork/tabdeploy/internal/adapters"
	"github.com/tablelandnetwork/tabdeploy/internal/config"
	"github.com/tablelandnetwork/tabdeploy/internal/logging"
	"github.com/tablelandnetwork/tabdeploy/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewDeployProxy,
		usecase.NewDeployGovernance,
		usecase.NewDeployVRF,
		usecase.NewUpgradeProxy,
		usecase.NewShowProxy,
		usecase.NewListAccounts,
		usecase.NewListNetworks,
		usecase.NewShowConfig,

		// App
		NewApp,
	)
	return nil, nil
}
