package blockchain

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tablelandnetwork/tabdeploy/internal/domain/config"
)

// RPCCaller is the subset of rpc.Client used for node control methods
type RPCCaller interface {
	CallContext(ctx context.Context, result any, method string, args ...any) error
}

// ConfigureMining applies the mining settings of a development node. With
// auto mining disabled, blocks are produced at a random interval within
// [min, max] milliseconds.
func ConfigureMining(ctx context.Context, rpc RPCCaller, mining *config.MiningConfig, log *slog.Logger) error {
	if mining == nil || mining.Auto {
		return nil
	}

	if err := rpc.CallContext(ctx, nil, "evm_setAutomine", false); err != nil {
		return fmt.Errorf("failed to disable auto mining: %w", err)
	}

	var interval any
	switch len(mining.Interval) {
	case 0:
		return nil
	case 1:
		interval = mining.Interval[0]
	default:
		interval = mining.Interval[:2]
	}
	if err := rpc.CallContext(ctx, nil, "evm_setIntervalMining", interval); err != nil {
		return fmt.Errorf("failed to set interval mining: %w", err)
	}

	log.Debug("interval mining enabled", "interval", mining.Interval)
	return nil
}
