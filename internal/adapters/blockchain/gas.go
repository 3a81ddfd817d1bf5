package blockchain

import (
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/tablelandnetwork/tabdeploy/internal/domain/models"
)

// GasCollector accumulates the gas spent by mined transactions
type GasCollector struct {
	enabled bool
	mu      sync.Mutex
	entries []models.GasEntry
}

// NewGasCollector creates a collector. A disabled collector records nothing.
func NewGasCollector(enabled bool) *GasCollector {
	return &GasCollector{enabled: enabled}
}

// Record adds the receipt of a transaction sent for contract.method
func (g *GasCollector) Record(contract, method string, receipt *types.Receipt) {
	if !g.enabled || receipt == nil {
		return
	}

	price := receipt.EffectiveGasPrice
	if price == nil {
		price = new(big.Int)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.entries = append(g.entries, models.GasEntry{
		Contract: contract,
		Method:   method,
		TxHash:   receipt.TxHash,
		GasUsed:  receipt.GasUsed,
		GasPrice: new(big.Int).Set(price),
	})
}

// Entries returns the recorded entries in send order
func (g *GasCollector) Entries() []models.GasEntry {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]models.GasEntry(nil), g.entries...)
}
