package upgrades

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tablelandnetwork/tabdeploy/internal/adapters/blockchain"
	"github.com/tablelandnetwork/tabdeploy/internal/domain"
	"github.com/tablelandnetwork/tabdeploy/internal/domain/config"
	"github.com/tablelandnetwork/tabdeploy/internal/domain/models"
	"github.com/tablelandnetwork/tabdeploy/internal/usecase"
)

// ProxyContract is the artifact deployed in front of every implementation
const ProxyContract = "ERC1967Proxy"

const upgradeableJSON = `[
	{"type":"function","name":"UPGRADE_INTERFACE_VERSION","inputs":[],"outputs":[{"name":"","type":"string"}],"stateMutability":"view"},
	{"type":"function","name":"upgradeTo","inputs":[{"name":"newImplementation","type":"address"}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"upgradeToAndCall","inputs":[{"name":"newImplementation","type":"address"},{"name":"data","type":"bytes"}],"outputs":[],"stateMutability":"payable"}
]`

// upgradeableABI covers the upgrade functions of every UUPSUpgradeable
// version, so a proxy can be driven whatever implementation it runs
var upgradeableABI = func() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(upgradeableJSON))
	if err != nil {
		panic(err)
	}
	return parsed
}()

// Backend is the chain access a Manager needs
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	StorageReader
}

// ManifestStore persists the implementations deployed per network
type ManifestStore interface {
	Load(ctx context.Context, network string) (*models.ImplementationManifest, error)
	Save(ctx context.Context, manifest *models.ImplementationManifest) error
}

// Manager deploys and upgrades UUPS proxies on one network
type Manager struct {
	network   *config.Network
	chainID   uint64
	backend   Backend
	opts      *bind.TransactOpts
	signerErr error
	artifacts usecase.ArtifactRepository
	manifests ManifestStore
	gas       *blockchain.GasCollector
	closer    func()
	log       *slog.Logger
}

// DeployProxy deploys (or reuses) the implementation of artifact and an
// ERC1967Proxy initialised with initialize(initArgs...)
func (m *Manager) DeployProxy(ctx context.Context, artifact *models.Artifact, initArgs []string) (*models.ProxyDeployment, error) {
	initData, err := EncodeInitializer(artifact.ABI, initArgs)
	if err != nil {
		return nil, err
	}

	proxyArtifact, err := m.artifacts.GetArtifact(ctx, ProxyContract)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s artifact, import @openzeppelin/contracts/proxy/ERC1967/ERC1967Proxy.sol and compile: %w", ProxyContract, err)
	}

	impl, reused, err := m.deployImplementation(ctx, artifact)
	if err != nil {
		return nil, err
	}
	if err := m.checkUUPS(ctx, impl, artifact); err != nil {
		return nil, err
	}

	opts, err := m.transactOpts(ctx)
	if err != nil {
		return nil, err
	}
	m.log.Debug("deploying proxy", "implementation", impl.Hex(), "initData", common.Bytes2Hex(initData))
	proxy, tx, _, err := bind.DeployContract(opts, proxyArtifact.ABI, proxyArtifact.Bytecode, m.backend, impl, initData)
	if err != nil {
		return nil, fmt.Errorf("failed to send proxy deployment: %w", err)
	}
	if _, err := m.waitMined(ctx, ProxyContract, "deploy", tx); err != nil {
		return nil, err
	}

	return &models.ProxyDeployment{
		Contract:             artifact.ContractName,
		Kind:                 models.ProxyKindUUPS,
		Proxy:                proxy,
		Implementation:       impl,
		ProxyTx:              tx.Hash(),
		ImplementationReused: reused,
	}, nil
}

// UpgradeProxy deploys (or reuses) the implementation of artifact and
// points proxy at it
func (m *Manager) UpgradeProxy(ctx context.Context, proxy common.Address, artifact *models.Artifact) (*models.ProxyUpgrade, error) {
	code, err := m.backend.CodeAt(ctx, proxy, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read code at %s: %w", proxy.Hex(), err)
	}
	if len(code) == 0 {
		return nil, fmt.Errorf("no contract deployed at %s on %s", proxy.Hex(), m.network.Name)
	}

	// the new implementation must itself stay upgradeable
	if _, err := upgradeMethod(artifact.ABI); err != nil {
		return nil, fmt.Errorf("%s: %w", artifact.ContractName, err)
	}

	impl, reused, err := m.deployImplementation(ctx, artifact)
	if err != nil {
		return nil, err
	}
	if err := m.checkUUPS(ctx, impl, artifact); err != nil {
		return nil, err
	}

	opts, err := m.transactOpts(ctx)
	if err != nil {
		return nil, err
	}
	// the call runs the code the proxy currently delegates to
	method := m.liveUpgradeMethod(ctx, proxy)
	args := []any{impl}
	if method == "upgradeToAndCall" {
		args = append(args, []byte{})
	}
	contract := bind.NewBoundContract(proxy, upgradeableABI, m.backend, m.backend, m.backend)
	tx, err := contract.Transact(opts, method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to send %s: %w", method, err)
	}
	if _, err := m.waitMined(ctx, artifact.ContractName, method, tx); err != nil {
		return nil, err
	}

	target := proxy
	if tx.To() != nil {
		target = *tx.To()
	}
	return &models.ProxyUpgrade{
		Contract:             artifact.ContractName,
		Proxy:                target,
		Implementation:       impl,
		UpgradeTx:            tx.Hash(),
		ImplementationReused: reused,
	}, nil
}

// ImplementationAddress reads the ERC-1967 implementation slot of proxy
func (m *Manager) ImplementationAddress(ctx context.Context, proxy common.Address) (common.Address, error) {
	return ReadImplementation(ctx, m.backend, proxy)
}

// GasReport returns the gas spent by the transactions sent so far
func (m *Manager) GasReport() []models.GasEntry {
	return m.gas.Entries()
}

// Close releases the connection to the node
func (m *Manager) Close() {
	if m.closer != nil {
		m.closer()
	}
}

// deployImplementation returns the implementation built from artifact's
// bytecode, deploying it unless the manifest has a live copy
func (m *Manager) deployImplementation(ctx context.Context, artifact *models.Artifact) (common.Address, bool, error) {
	hash := artifact.BytecodeHash()
	manifest, err := m.manifests.Load(ctx, m.network.Name)
	if err != nil {
		return common.Address{}, false, err
	}
	if m.chainID != 0 && manifest.ChainID != 0 && manifest.ChainID != m.chainID {
		m.log.Warn("manifest belongs to another chain, ignoring it", "network", m.network.Name, "manifestChainId", manifest.ChainID, "chainId", m.chainID)
		manifest = models.NewImplementationManifest(m.network.Name)
	}

	if entry, ok := manifest.Lookup(hash); ok {
		reusable, err := m.holdsImplementation(ctx, entry, artifact)
		if err != nil {
			return common.Address{}, false, err
		}
		if reusable {
			m.log.Debug("reusing implementation", "contract", artifact.ContractName, "address", entry.Address.Hex())
			return entry.Address, true, nil
		}
		m.log.Debug("manifest implementation is gone, redeploying", "address", entry.Address.Hex())
	}

	opts, err := m.transactOpts(ctx)
	if err != nil {
		return common.Address{}, false, err
	}
	addr, tx, _, err := bind.DeployContract(opts, artifact.ABI, artifact.Bytecode, m.backend)
	if err != nil {
		return common.Address{}, false, fmt.Errorf("failed to send %s deployment: %w", artifact.ContractName, err)
	}
	if _, err := m.waitMined(ctx, artifact.ContractName, "deploy", tx); err != nil {
		return common.Address{}, false, err
	}
	m.log.Debug("implementation deployed", "contract", artifact.ContractName, "address", addr.Hex())

	code, err := m.backend.CodeAt(ctx, addr, nil)
	if err != nil {
		return common.Address{}, false, fmt.Errorf("failed to read code at %s: %w", addr.Hex(), err)
	}

	manifest.ChainID = m.chainID
	manifest.Add(hash, models.ImplementationEntry{
		Contract:   artifact.FullyQualifiedName(),
		Address:    addr,
		TxHash:     tx.Hash(),
		CodeHash:   crypto.Keccak256Hash(code),
		DeployedAt: time.Now().UTC(),
	})
	if err := m.manifests.Save(ctx, manifest); err != nil {
		return common.Address{}, false, err
	}

	return addr, false, nil
}

// holdsImplementation reports whether entry's address still holds the code
// deployed from artifact. Dev nodes hand out the same addresses after a
// restart, so any code at the address is not enough.
func (m *Manager) holdsImplementation(ctx context.Context, entry models.ImplementationEntry, artifact *models.Artifact) (bool, error) {
	code, err := m.backend.CodeAt(ctx, entry.Address, nil)
	if err != nil {
		return false, fmt.Errorf("failed to read code at %s: %w", entry.Address.Hex(), err)
	}
	if len(code) == 0 {
		return false, nil
	}
	if entry.CodeHash != (common.Hash{}) {
		return crypto.Keccak256Hash(code) == entry.CodeHash, nil
	}
	// entries written without a code hash fall back to the artifact's
	// runtime bytecode
	return bytes.Equal(code, artifact.DeployedBytecode), nil
}

// checkUUPS verifies that impl reports the ERC-1967 slot from proxiableUUID
func (m *Manager) checkUUPS(ctx context.Context, impl common.Address, artifact *models.Artifact) error {
	if _, ok := artifact.ABI.Methods["proxiableUUID"]; !ok {
		return fmt.Errorf("%s is not UUPS upgradeable: missing proxiableUUID", artifact.ContractName)
	}

	contract := bind.NewBoundContract(impl, artifact.ABI, m.backend, m.backend, m.backend)
	var out []any
	if err := contract.Call(&bind.CallOpts{Context: ctx}, &out, "proxiableUUID"); err != nil {
		return fmt.Errorf("proxiableUUID call on %s failed: %w", impl.Hex(), err)
	}
	if len(out) != 1 {
		return fmt.Errorf("proxiableUUID returned %d values", len(out))
	}
	uuid, ok := out[0].([32]byte)
	if !ok || common.Hash(uuid) != ImplementationSlot {
		return fmt.Errorf("%s is not UUPS upgradeable: unexpected proxiableUUID", artifact.ContractName)
	}
	return nil
}

func (m *Manager) transactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	if m.opts == nil {
		return nil, m.signerErr
	}
	opts := *m.opts
	opts.Context = ctx
	return &opts, nil
}

func (m *Manager) waitMined(ctx context.Context, contract, method string, tx *types.Transaction) (*types.Receipt, error) {
	m.log.Debug("waiting for transaction", "hash", tx.Hash().Hex(), "contract", contract, "method", method)
	receipt, err := bind.WaitMined(ctx, m.backend, tx)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for %s %s: %w", contract, method, err)
	}
	m.gas.Record(contract, method, receipt)
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%s %s (%s): %w", contract, method, tx.Hash().Hex(), domain.ErrTxReverted)
	}
	return receipt, nil
}

// liveUpgradeMethod picks the upgrade function of the implementation proxy
// currently runs. UUPSUpgradeable 5.x exposes UPGRADE_INTERFACE_VERSION and
// only upgradeToAndCall; older versions have no version getter and keep
// upgradeTo.
func (m *Manager) liveUpgradeMethod(ctx context.Context, proxy common.Address) string {
	contract := bind.NewBoundContract(proxy, upgradeableABI, m.backend, m.backend, m.backend)
	var out []any
	if err := contract.Call(&bind.CallOpts{Context: ctx}, &out, "UPGRADE_INTERFACE_VERSION"); err != nil || len(out) != 1 {
		return "upgradeTo"
	}
	if version, _ := out[0].(string); version != "5.0.0" {
		m.log.Warn("unknown upgrade interface version, using upgradeToAndCall", "version", version)
	}
	return "upgradeToAndCall"
}

// upgradeMethod picks the upgrade entry point exposed by the implementation
func upgradeMethod(contractABI abi.ABI) (string, error) {
	if _, ok := contractABI.Methods["upgradeTo"]; ok {
		return "upgradeTo", nil
	}
	if _, ok := contractABI.Methods["upgradeToAndCall"]; ok {
		return "upgradeToAndCall", nil
	}
	return "", errors.New("no upgradeTo or upgradeToAndCall function, not a UUPS implementation")
}

// Ensure Manager implements ProxyManager
var _ usecase.ProxyManager = (*Manager)(nil)
