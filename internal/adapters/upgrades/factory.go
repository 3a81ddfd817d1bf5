package upgrades

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/tablelandnetwork/tabdeploy/internal/adapters/blockchain"
	"github.com/tablelandnetwork/tabdeploy/internal/domain"
	"github.com/tablelandnetwork/tabdeploy/internal/domain/config"
	"github.com/tablelandnetwork/tabdeploy/internal/usecase"
)

// Factory connects Managers to networks
type Factory struct {
	cfg       *config.RuntimeConfig
	artifacts usecase.ArtifactRepository
	manifests ManifestStore
	log       *slog.Logger
}

// NewFactory creates a new proxy manager factory
func NewFactory(cfg *config.RuntimeConfig, artifacts usecase.ArtifactRepository, manifests ManifestStore, log *slog.Logger) *Factory {
	return &Factory{
		cfg:       cfg,
		artifacts: artifacts,
		manifests: manifests,
		log:       log,
	}
}

// Open dials the network, checks its chain id and prepares the signer. A
// network without a signer can still be inspected; transactions then fail
// with domain.ErrNoSigner.
func (f *Factory) Open(ctx context.Context, network *config.Network) (usecase.ProxyManager, error) {
	key, signerErr := blockchain.SignerKey(network)
	if signerErr != nil && !errors.Is(signerErr, domain.ErrNoSigner) {
		return nil, signerErr
	}

	client, chainID, err := f.dial(ctx, network)
	if err != nil {
		return nil, err
	}

	var opts *bind.TransactOpts
	if key != nil {
		opts, err = bind.NewKeyedTransactorWithChainID(key, chainID)
		if err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to create transactor: %w", err)
		}
		f.log.Debug("signer", "address", opts.From.Hex())
	}

	if err := blockchain.ConfigureMining(ctx, client.RPC, network.Mining, f.log); err != nil {
		client.Close()
		return nil, err
	}

	return &Manager{
		network:   network,
		chainID:   chainID.Uint64(),
		backend:   client,
		opts:      opts,
		signerErr: signerErr,
		artifacts: f.artifacts,
		manifests: f.manifests,
		gas:       blockchain.NewGasCollector(f.cfg.GasReporter.Enabled),
		closer:    client.Close,
		log:       f.log,
	}, nil
}

// OpenReader dials the network for inspection only. Account keys are not
// parsed and mining is left as the node has it.
func (f *Factory) OpenReader(ctx context.Context, network *config.Network) (usecase.ProxyReader, error) {
	client, chainID, err := f.dial(ctx, network)
	if err != nil {
		return nil, err
	}

	return &Manager{
		network:   network,
		chainID:   chainID.Uint64(),
		backend:   client,
		signerErr: domain.ErrNoSigner,
		artifacts: f.artifacts,
		manifests: f.manifests,
		gas:       blockchain.NewGasCollector(false),
		closer:    client.Close,
		log:       f.log,
	}, nil
}

func (f *Factory) dial(ctx context.Context, network *config.Network) (*blockchain.Client, *big.Int, error) {
	client, err := blockchain.Dial(ctx, network.RPCURL)
	if err != nil {
		return nil, nil, err
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	if network.ChainID != 0 && chainID.Uint64() != network.ChainID {
		client.Close()
		return nil, nil, fmt.Errorf("chain ID mismatch: expected %d, got %d", network.ChainID, chainID.Uint64())
	}
	f.log.Debug("connected", "network", network.Name, "chainId", chainID.Uint64())

	return client, chainID, nil
}

// Ensure Factory implements ProxyManagerFactory
var _ usecase.ProxyManagerFactory = (*Factory)(nil)
