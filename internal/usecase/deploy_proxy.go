package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/tablelandnetwork/tabdeploy/internal/domain/config"
	"github.com/tablelandnetwork/tabdeploy/internal/domain/models"
)

// DeployProxy deploys a contract behind a new UUPS proxy and records the
// proxy address for the selected network
type DeployProxy struct {
	cfg       *config.RuntimeConfig
	artifacts ArtifactRepository
	registry  AddressRegistry
	managers  ProxyManagerFactory
	confirmer Confirmer
	progress  ProgressSink
	log       *slog.Logger
}

// NewDeployProxy creates a new deploy proxy use case
func NewDeployProxy(
	cfg *config.RuntimeConfig,
	artifacts ArtifactRepository,
	registry AddressRegistry,
	managers ProxyManagerFactory,
	confirmer Confirmer,
	progress ProgressSink,
	log *slog.Logger,
) *DeployProxy {
	return &DeployProxy{
		cfg:       cfg,
		artifacts: artifacts,
		registry:  registry,
		managers:  managers,
		confirmer: confirmer,
		progress:  progress,
		log:       log,
	}
}

// DeployProxyParams contains parameters for deploying a proxy
type DeployProxyParams struct {
	Contract string
	Record   string
	InitArgs []string
}

// DeployProxyResult contains the result of a proxy deployment
type DeployProxyResult struct {
	Network        string
	Deployment     *models.ProxyDeployment
	Implementation common.Address // read back from the proxy
	RecordPath     string
	GasReport      []models.GasEntry
}

// Run deploys the proxy
func (uc *DeployProxy) Run(ctx context.Context, params DeployProxyParams) (*DeployProxyResult, error) {
	network := uc.cfg.Network
	if err := requireProvider(network); err != nil {
		return nil, err
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageResolving, Message: "Loading artifact " + params.Contract})
	artifact, err := uc.artifacts.GetArtifact(ctx, params.Contract)
	if err != nil {
		return nil, err
	}

	if err := confirmLive(ctx, uc.cfg, uc.confirmer, "Deploy "+artifact.ContractName+" proxy"); err != nil {
		return nil, err
	}

	manager, err := uc.managers.Open(ctx, network)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", network.Name, err)
	}
	defer manager.Close()

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageDeploying,
		Message: fmt.Sprintf("Deploying %s proxy to %s", artifact.ContractName, network.Name),
		Spinner: true,
	})
	deployment, err := manager.DeployProxy(ctx, artifact, params.InitArgs)
	if err != nil {
		return nil, fmt.Errorf("failed to deploy %s proxy: %w", artifact.ContractName, err)
	}
	uc.log.Debug("proxy deployed", "address", deployment.Proxy.Hex(), "network", network.Name)

	impl, err := manager.ImplementationAddress(ctx, deployment.Proxy)
	if err != nil {
		return nil, fmt.Errorf("failed to read implementation of %s: %w", deployment.Proxy.Hex(), err)
	}
	uc.log.Debug("new implementation", "address", impl.Hex())

	key := models.RecordKey{Network: network.Name, Record: params.Record}
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageRecording, Message: "Recording " + key.FileName()})
	if err := uc.registry.Record(ctx, key, deployment.Proxy); err != nil {
		return nil, fmt.Errorf("failed to record proxy address: %w", err)
	}
	uc.log.Debug("proxy address recorded", "path", uc.registry.Path(key))

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageCompleted})

	return &DeployProxyResult{
		Network:        network.Name,
		Deployment:     deployment,
		Implementation: impl,
		RecordPath:     uc.registry.Path(key),
		GasReport:      manager.GasReport(),
	}, nil
}
