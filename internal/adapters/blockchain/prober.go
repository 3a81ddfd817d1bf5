package blockchain

import (
	"context"
	"fmt"
	"time"

	"github.com/tablelandnetwork/tabdeploy/internal/usecase"
)

// ProberAdapter fetches chain ids with a short-lived connection
type ProberAdapter struct {
	timeout time.Duration
}

// NewProberAdapter creates a new chain id prober
func NewProberAdapter() *ProberAdapter {
	return &ProberAdapter{timeout: 5 * time.Second}
}

// ChainID returns the chain id served by rpcURL
func (p *ProberAdapter) ChainID(ctx context.Context, rpcURL string) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	client, err := Dial(ctx, rpcURL)
	if err != nil {
		return 0, err
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get chain ID: %w", err)
	}
	return chainID.Uint64(), nil
}

// Ensure the adapter implements the interface
var _ usecase.ChainIDProber = (*ProberAdapter)(nil)
