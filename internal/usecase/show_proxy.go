package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/tablelandnetwork/tabdeploy/internal/domain"
	"github.com/tablelandnetwork/tabdeploy/internal/domain/config"
	"github.com/tablelandnetwork/tabdeploy/internal/domain/models"
)

// ShowProxyParams contains parameters for showing a proxy
type ShowProxyParams struct {
	Record string
	// Offline skips reading the implementation slot
	Offline bool
}

// ShowProxy is the use case for inspecting the proxy of a network
type ShowProxy struct {
	cfg      *config.RuntimeConfig
	registry AddressRegistry
	managers ProxyManagerFactory
	progress ProgressSink
}

// NewShowProxy creates a new ShowProxy use case
func NewShowProxy(cfg *config.RuntimeConfig, registry AddressRegistry, managers ProxyManagerFactory, progress ProgressSink) *ShowProxy {
	return &ShowProxy{
		cfg:      cfg,
		registry: registry,
		managers: managers,
		progress: progress,
	}
}

// Run returns the recorded and configured proxy for the selected network
func (uc *ShowProxy) Run(ctx context.Context, params ShowProxyParams) (*models.ProxyRecord, error) {
	network := uc.cfg.Network
	key := models.RecordKey{Network: network.Name, Record: params.Record}

	record := &models.ProxyRecord{
		Network: network.Name,
		Record:  params.Record,
	}
	if params.Record == models.DefaultRecord {
		record.Configured = uc.cfg.Proxy
	}

	proxy, err := resolveRecordedAddress(ctx, uc.cfg, uc.registry, key)
	switch {
	case err == nil:
		record.Proxy = proxy
	case isNotFound(err):
		if record.Configured == "" {
			return nil, domain.MissingConfigError{What: "proxies entry", Network: network.Name}
		}
	default:
		return nil, err
	}

	target := record.Proxy
	if target == (common.Address{}) && common.IsHexAddress(record.Configured) {
		target = common.HexToAddress(record.Configured)
	}
	if params.Offline || network.RPCURL == "" || target == (common.Address{}) {
		return record, nil
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageResolving, Message: "Reading implementation slot", Spinner: true})
	reader, err := uc.managers.OpenReader(ctx, network)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", network.Name, err)
	}
	defer reader.Close()

	impl, err := reader.ImplementationAddress(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("failed to read implementation of %s: %w", target.Hex(), err)
	}
	record.Implementation = impl
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageCompleted})

	return record, nil
}
