package usecase_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
	"github.com/tablelandnetwork/tabdeploy/internal/domain/config"
	"github.com/tablelandnetwork/tabdeploy/internal/domain/models"
	"github.com/tablelandnetwork/tabdeploy/internal/usecase"
)

type mockRegistry struct {
	mock.Mock
}

func (m *mockRegistry) Lookup(ctx context.Context, key models.RecordKey) (common.Address, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(common.Address), args.Error(1)
}

func (m *mockRegistry) Record(ctx context.Context, key models.RecordKey, proxy common.Address) error {
	args := m.Called(ctx, key, proxy)
	return args.Error(0)
}

func (m *mockRegistry) Path(key models.RecordKey) string {
	return "/project/" + key.FileName()
}

type mockArtifacts struct {
	mock.Mock
}

func (m *mockArtifacts) GetArtifact(ctx context.Context, name string) (*models.Artifact, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artifact), args.Error(1)
}

type mockManager struct {
	mock.Mock
}

func (m *mockManager) DeployProxy(ctx context.Context, artifact *models.Artifact, initArgs []string) (*models.ProxyDeployment, error) {
	args := m.Called(ctx, artifact, initArgs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProxyDeployment), args.Error(1)
}

func (m *mockManager) UpgradeProxy(ctx context.Context, proxy common.Address, artifact *models.Artifact) (*models.ProxyUpgrade, error) {
	args := m.Called(ctx, proxy, artifact)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProxyUpgrade), args.Error(1)
}

func (m *mockManager) ImplementationAddress(ctx context.Context, proxy common.Address) (common.Address, error) {
	args := m.Called(ctx, proxy)
	return args.Get(0).(common.Address), args.Error(1)
}

func (m *mockManager) GasReport() []models.GasEntry {
	return nil
}

func (m *mockManager) Close() {
	m.Called()
}

type mockFactory struct {
	mock.Mock
}

func (m *mockFactory) Open(ctx context.Context, network *config.Network) (usecase.ProxyManager, error) {
	args := m.Called(ctx, network)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(usecase.ProxyManager), args.Error(1)
}

func (m *mockFactory) OpenReader(ctx context.Context, network *config.Network) (usecase.ProxyReader, error) {
	args := m.Called(ctx, network)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(usecase.ProxyReader), args.Error(1)
}

type mockConfirmer struct {
	mock.Mock
}

func (m *mockConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	args := m.Called(ctx, prompt)
	return args.Bool(0), args.Error(1)
}

type mockAccountLister struct {
	mock.Mock
}

func (m *mockAccountLister) SignerAddresses(network *config.Network) ([]common.Address, error) {
	args := m.Called(network)
	return args.Get(0).([]common.Address), args.Error(1)
}

func (m *mockAccountLister) NodeAccounts(ctx context.Context, network *config.Network) ([]common.Address, error) {
	args := m.Called(ctx, network)
	return args.Get(0).([]common.Address), args.Error(1)
}

type mockProber struct {
	mock.Mock
}

func (m *mockProber) ChainID(ctx context.Context, rpcURL string) (uint64, error) {
	args := m.Called(ctx, rpcURL)
	return args.Get(0).(uint64), args.Error(1)
}

var (
	proxyAddr = common.HexToAddress("0x5FC8d32690cc91D4c39d9d3abcBD16989F875707")
	implV1    = common.HexToAddress("0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512")
	implV2    = common.HexToAddress("0x9fE46736679d2D9a65F0992F2272dE9f3c7fa6e0")
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// infoLogger logs at the default level into w, as a run without --debug does
func infoLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func hardhatConfig() *config.RuntimeConfig {
	hardhat := &config.Network{Name: "hardhat", RPCURL: "http://127.0.0.1:8545", Local: true}
	return &config.RuntimeConfig{
		ProjectRoot: "/project",
		Network:     hardhat,
		Networks:    map[string]*config.Network{"hardhat": hardhat},
	}
}

func mumbaiConfig() *config.RuntimeConfig {
	mumbai := &config.Network{Name: "polygon_mumbai", RPCURL: "https://polygon-mumbai.g.alchemy.com/v2/key"}
	return &config.RuntimeConfig{
		ProjectRoot: "/project",
		Network:     mumbai,
		Networks:    map[string]*config.Network{"polygon_mumbai": mumbai},
	}
}

func artifactFor(name string) *models.Artifact {
	return &models.Artifact{ContractName: name, SourceName: "contracts/" + name + ".sol"}
}
