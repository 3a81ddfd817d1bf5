package blockchain

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// Client bundles the typed client with the raw RPC connection used for
// node-specific methods such as eth_accounts and evm_setAutomine
type Client struct {
	*ethclient.Client
	RPC *rpc.Client
}

// Dial connects to a JSON-RPC endpoint
func Dial(ctx context.Context, rpcURL string) (*Client, error) {
	rc, err := rpc.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	return &Client{
		Client: ethclient.NewClient(rc),
		RPC:    rc,
	}, nil
}
