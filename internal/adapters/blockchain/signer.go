package blockchain

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/samber/lo"
	"github.com/tablelandnetwork/tabdeploy/internal/domain"
	"github.com/tablelandnetwork/tabdeploy/internal/domain/config"
)

// DevPrivateKey is account #0 of the hardhat and anvil development nodes
const DevPrivateKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

// SignerKeys parses the account keys configured for network. Local
// networks without keys fall back to the development account.
func SignerKeys(network *config.Network) ([]*ecdsa.PrivateKey, error) {
	accounts := network.Accounts
	if len(accounts) == 0 && network.Local {
		accounts = []string{DevPrivateKey}
	}

	keys := make([]*ecdsa.PrivateKey, 0, len(accounts))
	for i, account := range accounts {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(account), "0x"))
		if err != nil {
			return nil, fmt.Errorf("invalid private key for account %d of %s: %w", i, network.Name, err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// SignerKey returns the key transactions on network are sent from
func SignerKey(network *config.Network) (*ecdsa.PrivateKey, error) {
	keys, err := SignerKeys(network)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w for %s, set PRIVATE_KEY", domain.ErrNoSigner, network.Name)
	}
	return keys[0], nil
}

// SignerAddresses returns the addresses of the configured signer keys
func SignerAddresses(network *config.Network) ([]common.Address, error) {
	keys, err := SignerKeys(network)
	if err != nil {
		return nil, err
	}
	return lo.Map(keys, func(key *ecdsa.PrivateKey, _ int) common.Address {
		return crypto.PubkeyToAddress(key.PublicKey)
	}), nil
}
