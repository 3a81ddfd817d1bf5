package models

import (
	"path/filepath"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// ProxyKind is the upgrade pattern a proxy follows
type ProxyKind string

const (
	// ProxyKindUUPS is an ERC-1967 proxy whose upgrade logic lives in the implementation
	ProxyKindUUPS ProxyKind = "uups"
)

// DefaultRecord is the record name of the primary contract of a network
const DefaultRecord = ""

// RecordKey identifies one persisted proxy address
type RecordKey struct {
	Network string
	Record  string // "" for the primary record, e.g. "gov" for governance
}

// FileName returns the env file name holding the record,
// e.g. ".hardhat.env" or ".hardhat.gov.env".
func (k RecordKey) FileName() string {
	if k.Record == DefaultRecord {
		return "." + k.Network + ".env"
	}
	return "." + k.Network + "." + k.Record + ".env"
}

// Path returns the env file path below root
func (k RecordKey) Path(root string) string {
	return filepath.Join(root, k.FileName())
}

// ProxyRecord pairs a network with its proxy and the implementation the
// proxy currently delegates to. Only Proxy is persisted.
type ProxyRecord struct {
	Network        string         `json:"network" yaml:"network"`
	Record         string         `json:"record,omitempty" yaml:"record,omitempty"`
	Proxy          common.Address `json:"proxy" yaml:"proxy"`
	Implementation common.Address `json:"implementation" yaml:"implementation"`
	Configured     string         `json:"configured,omitempty" yaml:"configured,omitempty"`
}

// ProxyDeployment is the result of deploying a new proxy
type ProxyDeployment struct {
	Contract       string
	Kind           ProxyKind
	Proxy          common.Address
	Implementation common.Address
	ProxyTx        common.Hash
	// ImplementationReused is set when an identical implementation was
	// already deployed on the network and no new one was created.
	ImplementationReused bool
}

// ProxyUpgrade is the result of pointing a proxy at new logic
type ProxyUpgrade struct {
	Contract             string
	Proxy                common.Address // address the upgrade call was sent to
	Implementation       common.Address
	UpgradeTx            common.Hash
	ImplementationReused bool
}

// ImplementationEntry is one implementation recorded in the network manifest.
// CodeHash is keccak256 of the runtime code found at Address after
// deployment; a reused address must still hold exactly that code.
type ImplementationEntry struct {
	Contract   string         `json:"contract"`
	Address    common.Address `json:"address"`
	TxHash     common.Hash    `json:"txHash"`
	CodeHash   common.Hash    `json:"codeHash,omitzero"`
	DeployedAt time.Time      `json:"deployedAt"`
}

// ImplementationManifest lists the implementations deployed on one network,
// keyed by the hex keccak256 hash of their creation bytecode
type ImplementationManifest struct {
	Network         string                         `json:"network"`
	ChainID         uint64                         `json:"chainId,omitempty"`
	Implementations map[string]ImplementationEntry `json:"implementations"`
}

// NewImplementationManifest creates an empty manifest for network
func NewImplementationManifest(network string) *ImplementationManifest {
	return &ImplementationManifest{
		Network:         network,
		Implementations: make(map[string]ImplementationEntry),
	}
}

// Lookup returns the implementation deployed from the given bytecode
func (m *ImplementationManifest) Lookup(bytecodeHash common.Hash) (ImplementationEntry, bool) {
	entry, ok := m.Implementations[bytecodeHash.Hex()]
	return entry, ok
}

// Add records an implementation under its bytecode hash
func (m *ImplementationManifest) Add(bytecodeHash common.Hash, entry ImplementationEntry) {
	if m.Implementations == nil {
		m.Implementations = make(map[string]ImplementationEntry)
	}
	m.Implementations[bytecodeHash.Hex()] = entry
}
