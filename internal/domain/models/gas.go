package models

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// GasEntry records the gas spent by one mined transaction
type GasEntry struct {
	Contract string
	Method   string
	TxHash   common.Hash
	GasUsed  uint64
	GasPrice *big.Int // effective gas price in wei
}

// Cost returns GasUsed * GasPrice in wei
func (g GasEntry) Cost() *big.Int {
	if g.GasPrice == nil {
		return new(big.Int)
	}
	return new(big.Int).Mul(new(big.Int).SetUint64(g.GasUsed), g.GasPrice)
}
