package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/tablelandnetwork/tabdeploy/internal/domain"
	"github.com/tablelandnetwork/tabdeploy/internal/domain/config"
	"github.com/tablelandnetwork/tabdeploy/internal/domain/models"
)

// ImplementationUnchangedWarning is reported when an upgrade leaves the
// proxy pointing at the implementation it already had
const ImplementationUnchangedWarning = "Proxy implementation did not change. Is this expected?"

// UpgradeProxy points an existing proxy at a new implementation
type UpgradeProxy struct {
	cfg       *config.RuntimeConfig
	artifacts ArtifactRepository
	registry  AddressRegistry
	managers  ProxyManagerFactory
	confirmer Confirmer
	progress  ProgressSink
	log       *slog.Logger
}

// NewUpgradeProxy creates a new upgrade proxy use case
func NewUpgradeProxy(
	cfg *config.RuntimeConfig,
	artifacts ArtifactRepository,
	registry AddressRegistry,
	managers ProxyManagerFactory,
	confirmer Confirmer,
	progress ProgressSink,
	log *slog.Logger,
) *UpgradeProxy {
	return &UpgradeProxy{
		cfg:       cfg,
		artifacts: artifacts,
		registry:  registry,
		managers:  managers,
		confirmer: confirmer,
		progress:  progress,
		log:       log,
	}
}

// UpgradeProxyParams contains parameters for upgrading a proxy
type UpgradeProxyParams struct {
	Contract string
	Record   string
}

// UpgradeProxyResult contains the result of an upgrade
type UpgradeProxyResult struct {
	Network                string
	Proxy                  common.Address
	PreviousImplementation common.Address
	Implementation         common.Address
	Upgrade                *models.ProxyUpgrade
	Warnings               []string
	GasReport              []models.GasEntry
}

// Changed reports whether the proxy now points at a different implementation
func (r *UpgradeProxyResult) Changed() bool {
	return r.PreviousImplementation != r.Implementation
}

// Run upgrades the proxy recorded for the selected network
func (uc *UpgradeProxy) Run(ctx context.Context, params UpgradeProxyParams) (*UpgradeProxyResult, error) {
	network := uc.cfg.Network
	key := models.RecordKey{Network: network.Name, Record: params.Record}

	if err := requireProvider(network); err != nil {
		return nil, err
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageResolving, Message: "Reading " + key.FileName()})
	proxy, err := resolveRecordedAddress(ctx, uc.cfg, uc.registry, key)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.MissingConfigError{What: "proxies entry", Network: network.Name}
		}
		return nil, fmt.Errorf("failed to resolve proxy address: %w", err)
	}
	uc.log.Debug("using proxy address", "address", proxy.Hex())

	artifact, err := uc.artifacts.GetArtifact(ctx, params.Contract)
	if err != nil {
		return nil, err
	}

	if err := confirmLive(ctx, uc.cfg, uc.confirmer, fmt.Sprintf("Upgrade %s to %s", proxy.Hex(), artifact.ContractName)); err != nil {
		return nil, err
	}

	manager, err := uc.managers.Open(ctx, network)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", network.Name, err)
	}
	defer manager.Close()

	previous, err := manager.ImplementationAddress(ctx, proxy)
	if err != nil {
		return nil, fmt.Errorf("failed to read implementation of %s: %w", proxy.Hex(), err)
	}
	uc.log.Debug("current implementation", "address", previous.Hex())

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageUpgrading,
		Message: fmt.Sprintf("Upgrading %s on %s", artifact.ContractName, network.Name),
		Spinner: true,
	})
	upgrade, err := manager.UpgradeProxy(ctx, proxy, artifact)
	if err != nil {
		return nil, fmt.Errorf("failed to upgrade %s: %w", proxy.Hex(), err)
	}
	if upgrade.Proxy != proxy {
		return nil, domain.InvariantViolationError{Msg: "proxy address changed"}
	}
	uc.log.Debug("proxy upgraded", "address", upgrade.Proxy.Hex(), "network", network.Name)

	current, err := manager.ImplementationAddress(ctx, upgrade.Proxy)
	if err != nil {
		return nil, fmt.Errorf("failed to read implementation of %s: %w", proxy.Hex(), err)
	}

	result := &UpgradeProxyResult{
		Network:                network.Name,
		Proxy:                  upgrade.Proxy,
		PreviousImplementation: previous,
		Implementation:         current,
		Upgrade:                upgrade,
		GasReport:              manager.GasReport(),
	}
	if !result.Changed() {
		uc.log.Warn("implementation unchanged", "address", current.Hex())
		result.Warnings = append(result.Warnings, ImplementationUnchangedWarning)
	} else {
		uc.log.Debug("new implementation", "address", current.Hex())
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageCompleted})
	return result, nil
}
