package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/tablelandnetwork/tabdeploy/internal/domain"
	"github.com/tablelandnetwork/tabdeploy/internal/domain/config"
	"github.com/tablelandnetwork/tabdeploy/internal/domain/models"
)

// resolveRecordedAddress returns the proxy address recorded for key. The
// CONTRACT process variable takes precedence for the primary record, the
// same way dotenv never overrides variables that are already set.
// Returns domain.ErrNotFound when neither source has a value.
func resolveRecordedAddress(
	ctx context.Context,
	cfg *config.RuntimeConfig,
	registry AddressRegistry,
	key models.RecordKey,
) (common.Address, error) {
	if key.Record == models.DefaultRecord {
		if override := strings.TrimSpace(cfg.ContractOverride); override != "" {
			if !common.IsHexAddress(override) {
				return common.Address{}, fmt.Errorf("%w: CONTRACT=%q", domain.ErrInvalidAddress, override)
			}
			return common.HexToAddress(override), nil
		}
	}

	return registry.Lookup(ctx, key)
}

// requireProvider fails when the network has no RPC endpoint to talk to
func requireProvider(network *config.Network) error {
	if network == nil {
		return domain.MissingConfigError{What: "network"}
	}
	if network.RPCURL == "" {
		return domain.MissingConfigError{What: "provider", Network: network.Name}
	}
	return nil
}

// confirmLive asks before transacting on a non-local network
func confirmLive(ctx context.Context, cfg *config.RuntimeConfig, confirmer Confirmer, action string) error {
	if cfg.Network.Local || cfg.NonInteractive || confirmer == nil {
		return nil
	}

	ok, err := confirmer.Confirm(ctx, fmt.Sprintf("%s on %s", action, cfg.Network.Name))
	if err != nil {
		return fmt.Errorf("confirmation failed: %w", err)
	}
	if !ok {
		return domain.ErrAborted
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
