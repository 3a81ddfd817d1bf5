package blockchain

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/tablelandnetwork/tabdeploy/internal/domain/config"
	"github.com/tablelandnetwork/tabdeploy/internal/usecase"
)

// AccountsAdapter lists signer and node-managed accounts
type AccountsAdapter struct{}

// NewAccountsAdapter creates a new accounts adapter
func NewAccountsAdapter() *AccountsAdapter {
	return &AccountsAdapter{}
}

// SignerAddresses returns the addresses of the configured keys
func (a *AccountsAdapter) SignerAddresses(network *config.Network) ([]common.Address, error) {
	return SignerAddresses(network)
}

// NodeAccounts returns the accounts the node manages (eth_accounts)
func (a *AccountsAdapter) NodeAccounts(ctx context.Context, network *config.Network) ([]common.Address, error) {
	client, err := Dial(ctx, network.RPCURL)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	var accounts []common.Address
	if err := client.RPC.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
		return nil, fmt.Errorf("eth_accounts failed on %s: %w", network.Name, err)
	}
	return accounts, nil
}

// Ensure the adapter implements the interface
var _ usecase.AccountLister = (*AccountsAdapter)(nil)
