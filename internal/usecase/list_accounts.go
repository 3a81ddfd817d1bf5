package usecase

import (
	"context"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/tablelandnetwork/tabdeploy/internal/domain/config"
)

// Account sources
const (
	AccountSourceSigner = "signer"
	AccountSourceNode   = "node"
)

// AccountInfo is one account usable on the selected network
type AccountInfo struct {
	Address common.Address
	Source  string
}

// ListAccountsResult contains the result of listing accounts
type ListAccountsResult struct {
	Network  string
	Accounts []AccountInfo
	Warnings []string
}

// ListAccounts is the use case for listing signer and node accounts
type ListAccounts struct {
	cfg    *config.RuntimeConfig
	lister AccountLister
	log    *slog.Logger
}

// NewListAccounts creates a new ListAccounts use case
func NewListAccounts(cfg *config.RuntimeConfig, lister AccountLister, log *slog.Logger) *ListAccounts {
	return &ListAccounts{
		cfg:    cfg,
		lister: lister,
		log:    log,
	}
}

// Run lists configured signers first, then accounts managed by the node.
// An unreachable node is only a warning when signers are configured.
func (uc *ListAccounts) Run(ctx context.Context) (*ListAccountsResult, error) {
	network := uc.cfg.Network
	result := &ListAccountsResult{Network: network.Name}

	signers, err := uc.lister.SignerAddresses(network)
	if err != nil {
		return nil, err
	}
	accounts := lo.Map(signers, func(addr common.Address, _ int) AccountInfo {
		return AccountInfo{Address: addr, Source: AccountSourceSigner}
	})

	if err := requireProvider(network); err == nil {
		node, err := uc.lister.NodeAccounts(ctx, network)
		if err != nil {
			if len(accounts) == 0 {
				return nil, err
			}
			uc.log.Warn("failed to list node accounts", "network", network.Name, "error", err)
			result.Warnings = append(result.Warnings, "node accounts unavailable: "+err.Error())
		}
		for _, addr := range node {
			accounts = append(accounts, AccountInfo{Address: addr, Source: AccountSourceNode})
		}
	}

	result.Accounts = lo.UniqBy(accounts, func(a AccountInfo) common.Address { return a.Address })
	return result, nil
}
