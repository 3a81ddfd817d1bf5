package adapters

import (
	"github.com/google/wire"
	"github.com/tablelandnetwork/tabdeploy/internal/adapters/blockchain"
	"github.com/tablelandnetwork/tabdeploy/internal/adapters/fs"
	"github.com/tablelandnetwork/tabdeploy/internal/adapters/interactive"
	"github.com/tablelandnetwork/tabdeploy/internal/adapters/registry"
	"github.com/tablelandnetwork/tabdeploy/internal/adapters/repository/contracts"
	"github.com/tablelandnetwork/tabdeploy/internal/adapters/upgrades"
	"github.com/tablelandnetwork/tabdeploy/internal/usecase"
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewManifestStoreAdapter,
	wire.Bind(new(upgrades.ManifestStore), new(*fs.ManifestStoreAdapter)),
)

// RegistrySet provides the env file address registry
var RegistrySet = wire.NewSet(
	registry.NewManager,
	wire.Bind(new(usecase.AddressRegistry), new(*registry.Manager)),
)

// ArtifactSet provides the compiled contract repository
var ArtifactSet = wire.NewSet(
	contracts.NewRepository,
	wire.Bind(new(usecase.ArtifactRepository), new(*contracts.Repository)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewProberAdapter,
	wire.Bind(new(usecase.ChainIDProber), new(*blockchain.ProberAdapter)),

	blockchain.NewAccountsAdapter,
	wire.Bind(new(usecase.AccountLister), new(*blockchain.AccountsAdapter)),
)

// UpgradesSet provides the proxy deployer and upgrader
var UpgradesSet = wire.NewSet(
	upgrades.NewFactory,
	wire.Bind(new(usecase.ProxyManagerFactory), new(*upgrades.Factory)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewConfirmerAdapter,
	wire.Bind(new(usecase.Confirmer), new(*interactive.ConfirmerAdapter)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	RegistrySet,
	ArtifactSet,
	BlockchainSet,
	UpgradesSet,
	InteractiveSet,
)
