package upgrades

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ImplementationSlot is the ERC-1967 storage slot holding the implementation
// address, bytes32(uint256(keccak256("eip1967.proxy.implementation")) - 1)
var ImplementationSlot = common.HexToHash("0x360894a13ba1a3210667c828492db98dca3e2076cc3735a920a3ca505d382bbc")

// StorageReader reads raw contract storage
type StorageReader interface {
	StorageAt(ctx context.Context, account common.Address, key common.Hash, blockNumber *big.Int) ([]byte, error)
}

// ReadImplementation returns the implementation an ERC-1967 proxy delegates to
func ReadImplementation(ctx context.Context, reader StorageReader, proxy common.Address) (common.Address, error) {
	value, err := reader.StorageAt(ctx, proxy, ImplementationSlot, nil)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to read implementation slot: %w", err)
	}
	impl := common.BytesToAddress(value)
	if impl == (common.Address{}) {
		return common.Address{}, fmt.Errorf("%s is not an ERC-1967 proxy: implementation slot is empty", proxy.Hex())
	}
	return impl, nil
}
