package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/samber/lo"
	"github.com/tablelandnetwork/tabdeploy/internal/domain/config"
)

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
}

// NetworkStatus represents the status of a network
type NetworkStatus struct {
	Name     string
	RPCURL   string
	ChainID  uint64
	Local    bool
	Selected bool
	Error    error
}

// ListNetworks is a use case for listing available networks
type ListNetworks struct {
	cfg    *config.RuntimeConfig
	prober ChainIDProber
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(cfg *config.RuntimeConfig, prober ChainIDProber) *ListNetworks {
	return &ListNetworks{
		cfg:    cfg,
		prober: prober,
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context) (*ListNetworksResult, error) {
	names := sortedNetworkNames(uc.cfg.Networks)

	networks := make([]NetworkStatus, 0, len(names))
	for _, name := range names {
		network := uc.cfg.Networks[name]
		status := NetworkStatus{
			Name:     name,
			RPCURL:   network.RPCURL,
			Local:    network.Local,
			Selected: uc.cfg.Network != nil && uc.cfg.Network.Name == name,
		}

		if err := requireProvider(network); err != nil {
			status.Error = err
		} else if chainID, err := uc.prober.ChainID(ctx, network.RPCURL); err != nil {
			status.Error = err
		} else {
			status.ChainID = chainID
			if network.ChainID != 0 && network.ChainID != chainID {
				status.Error = chainIDMismatch(network.ChainID, chainID)
			}
		}

		networks = append(networks, status)
	}

	return &ListNetworksResult{
		Networks: networks,
	}, nil
}

func sortedNetworkNames(networks map[string]*config.Network) []string {
	names := lo.Keys(networks)
	sort.Strings(names)
	return names
}

func chainIDMismatch(want, got uint64) error {
	return fmt.Errorf("chain id mismatch: configured %d, node reports %d", want, got)
}
