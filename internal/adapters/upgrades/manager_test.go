package upgrades

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tablelandnetwork/tabdeploy/internal/adapters/blockchain"
	"github.com/tablelandnetwork/tabdeploy/internal/domain"
	"github.com/tablelandnetwork/tabdeploy/internal/domain/config"
	"github.com/tablelandnetwork/tabdeploy/internal/domain/models"
)

const uupsABI = `[
	{"type":"function","name":"initialize","inputs":[],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"upgradeTo","inputs":[{"name":"newImplementation","type":"address"}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"proxiableUUID","inputs":[],"outputs":[{"name":"","type":"bytes32"}],"stateMutability":"view"}
]`

var (
	testProxy = common.HexToAddress("0x5FC8d32690cc91D4c39d9d3abcBD16989F875707")
	testImpl  = common.HexToAddress("0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512")
)

// fakeBackend answers the read-only calls a Manager makes. Any other call
// hits the nil embedded Backend and panics.
type fakeBackend struct {
	Backend
	code       map[common.Address][]byte
	storage    map[common.Address]common.Hash
	callResult []byte
}

func (f *fakeBackend) CodeAt(_ context.Context, addr common.Address, _ *big.Int) ([]byte, error) {
	return f.code[addr], nil
}

func (f *fakeBackend) StorageAt(_ context.Context, addr common.Address, key common.Hash, _ *big.Int) ([]byte, error) {
	if key != ImplementationSlot {
		return make([]byte, 32), nil
	}
	value := f.storage[addr]
	return value.Bytes(), nil
}

func (f *fakeBackend) CallContract(context.Context, ethereum.CallMsg, *big.Int) ([]byte, error) {
	return f.callResult, nil
}

type memoryManifests struct {
	manifests map[string]*models.ImplementationManifest
}

func (m *memoryManifests) Load(_ context.Context, network string) (*models.ImplementationManifest, error) {
	if manifest, ok := m.manifests[network]; ok {
		return manifest, nil
	}
	return models.NewImplementationManifest(network), nil
}

func (m *memoryManifests) Save(_ context.Context, manifest *models.ImplementationManifest) error {
	m.manifests[manifest.Network] = manifest
	return nil
}

type noArtifacts struct{}

func (noArtifacts) GetArtifact(context.Context, string) (*models.Artifact, error) {
	return nil, domain.ErrArtifactNotFound
}

func newTestManager(t *testing.T, backend *fakeBackend, manifest *models.ImplementationManifest) *Manager {
	t.Helper()
	manifests := &memoryManifests{manifests: map[string]*models.ImplementationManifest{}}
	if manifest != nil {
		manifests.manifests[manifest.Network] = manifest
	}
	return &Manager{
		network:   &config.Network{Name: "hardhat", Local: true},
		backend:   backend,
		signerErr: domain.ErrNoSigner,
		artifacts: noArtifacts{},
		manifests: manifests,
		gas:       blockchain.NewGasCollector(false),
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func testArtifact(t *testing.T) *models.Artifact {
	return &models.Artifact{
		ContractName: "TableHolders",
		SourceName:   "contracts/TableHolders.sol",
		ABI:          mustABI(t, uupsABI),
		Bytecode:     []byte{0x60, 0x80},
	}
}

// manifestWith records impl as the deployment of artifact whose runtime
// code was code
func manifestWith(artifact *models.Artifact, impl common.Address, code []byte) *models.ImplementationManifest {
	manifest := models.NewImplementationManifest("hardhat")
	manifest.Add(artifact.BytecodeHash(), models.ImplementationEntry{
		Contract:   artifact.FullyQualifiedName(),
		Address:    impl,
		CodeHash:   crypto.Keccak256Hash(code),
		DeployedAt: time.Now(),
	})
	return manifest
}

func TestReadImplementation(t *testing.T) {
	backend := &fakeBackend{storage: map[common.Address]common.Hash{
		testProxy: common.BytesToHash(testImpl.Bytes()),
	}}

	impl, err := ReadImplementation(context.Background(), backend, testProxy)
	require.NoError(t, err)
	assert.Equal(t, testImpl, impl)

	_, err = ReadImplementation(context.Background(), backend, testImpl)
	assert.ErrorContains(t, err, "not an ERC-1967 proxy")
}

func TestManager_UpgradeProxy_NoContractAtProxy(t *testing.T) {
	m := newTestManager(t, &fakeBackend{}, nil)

	_, err := m.UpgradeProxy(context.Background(), testProxy, testArtifact(t))
	assert.ErrorContains(t, err, "no contract deployed at "+testProxy.Hex())
}

func TestManager_UpgradeProxy_RejectsNonUUPSImplementation(t *testing.T) {
	artifact := testArtifact(t)
	backend := &fakeBackend{
		code: map[common.Address][]byte{
			testProxy: {0x01},
			testImpl:  {0x01},
		},
		callResult: make([]byte, 32),
	}
	m := newTestManager(t, backend, manifestWith(artifact, testImpl, []byte{0x01}))

	_, err := m.UpgradeProxy(context.Background(), testProxy, artifact)
	assert.ErrorContains(t, err, "unexpected proxiableUUID")
}

func TestManager_UpgradeProxy_RequiresSigner(t *testing.T) {
	artifact := testArtifact(t)
	backend := &fakeBackend{
		code: map[common.Address][]byte{
			testProxy: {0x01},
			testImpl:  {0x01},
		},
		callResult: ImplementationSlot.Bytes(),
	}
	m := newTestManager(t, backend, manifestWith(artifact, testImpl, []byte{0x01}))

	_, err := m.UpgradeProxy(context.Background(), testProxy, artifact)
	assert.ErrorIs(t, err, domain.ErrNoSigner)
}

func TestManager_DeployImplementation_Reuse(t *testing.T) {
	artifact := testArtifact(t)
	artifact.DeployedBytecode = []byte{0x01}

	t.Run("same code is reused", func(t *testing.T) {
		backend := &fakeBackend{code: map[common.Address][]byte{testImpl: {0x01}}}
		m := newTestManager(t, backend, manifestWith(artifact, testImpl, []byte{0x01}))

		impl, reused, err := m.deployImplementation(context.Background(), artifact)
		require.NoError(t, err)
		assert.True(t, reused)
		assert.Equal(t, testImpl, impl)
	})

	t.Run("foreign code at the recorded address is not reused", func(t *testing.T) {
		// a restarted dev node hands the address to another contract
		backend := &fakeBackend{code: map[common.Address][]byte{testImpl: {0xde, 0xad, 0xbe, 0xef}}}
		m := newTestManager(t, backend, manifestWith(artifact, testImpl, []byte{0x01}))

		_, reused, err := m.deployImplementation(context.Background(), artifact)
		assert.ErrorIs(t, err, domain.ErrNoSigner)
		assert.False(t, reused)
	})

	t.Run("no code at the recorded address", func(t *testing.T) {
		m := newTestManager(t, &fakeBackend{}, manifestWith(artifact, testImpl, []byte{0x01}))

		_, reused, err := m.deployImplementation(context.Background(), artifact)
		assert.ErrorIs(t, err, domain.ErrNoSigner)
		assert.False(t, reused)
	})

	t.Run("entry without code hash compares runtime bytecode", func(t *testing.T) {
		manifest := manifestWith(artifact, testImpl, nil)
		entry, _ := manifest.Lookup(artifact.BytecodeHash())
		entry.CodeHash = common.Hash{}
		manifest.Add(artifact.BytecodeHash(), entry)

		backend := &fakeBackend{code: map[common.Address][]byte{testImpl: {0x01}}}
		_, reused, err := newTestManager(t, backend, manifest).deployImplementation(context.Background(), artifact)
		require.NoError(t, err)
		assert.True(t, reused)

		backend.code[testImpl] = []byte{0xde, 0xad, 0xbe, 0xef}
		_, reused, err = newTestManager(t, backend, manifest).deployImplementation(context.Background(), artifact)
		assert.ErrorIs(t, err, domain.ErrNoSigner)
		assert.False(t, reused)
	})

	t.Run("manifest of another chain is ignored", func(t *testing.T) {
		manifest := manifestWith(artifact, testImpl, []byte{0x01})
		manifest.ChainID = 1
		backend := &fakeBackend{code: map[common.Address][]byte{testImpl: {0x01}}}
		m := newTestManager(t, backend, manifest)
		m.chainID = 31337

		_, reused, err := m.deployImplementation(context.Background(), artifact)
		assert.ErrorIs(t, err, domain.ErrNoSigner)
		assert.False(t, reused)
	})
}

func TestManager_DeployProxy_MissingProxyArtifact(t *testing.T) {
	m := newTestManager(t, &fakeBackend{}, nil)

	_, err := m.DeployProxy(context.Background(), testArtifact(t), nil)
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
	assert.ErrorContains(t, err, "ERC1967Proxy.sol")
}

func TestUpgradeMethod(t *testing.T) {
	method, err := upgradeMethod(mustABI(t, uupsABI))
	require.NoError(t, err)
	assert.Equal(t, "upgradeTo", method)

	v5 := mustABI(t, `[{"type":"function","name":"upgradeToAndCall","inputs":[{"name":"newImplementation","type":"address"},{"name":"data","type":"bytes"}],"outputs":[],"stateMutability":"payable"}]`)
	method, err = upgradeMethod(v5)
	require.NoError(t, err)
	assert.Equal(t, "upgradeToAndCall", method)

	_, err = upgradeMethod(mustABI(t, govABI))
	assert.Error(t, err)
}

func newChainNode(t *testing.T, chainID string) (*[]string, string) {
	t.Helper()
	var methods []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		methods = append(methods, req.Method)

		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID, "result": true}
		if req.Method == "eth_chainId" {
			resp["result"] = chainID
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return &methods, srv.URL
}

func TestFactory_Open(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.RuntimeConfig{GasReporter: config.GasReporterConfig{Enabled: true}}
	factory := NewFactory(cfg, noArtifacts{}, &memoryManifests{manifests: map[string]*models.ImplementationManifest{}}, log)

	t.Run("local network with interval mining", func(t *testing.T) {
		methods, url := newChainNode(t, "0x7a69")
		network := &config.Network{
			Name:   "hardhat",
			RPCURL: url,
			Local:  true,
			Mining: &config.MiningConfig{Auto: false, Interval: []uint64{100, 3000}},
		}

		manager, err := factory.Open(context.Background(), network)
		require.NoError(t, err)
		defer manager.Close()

		assert.Equal(t, []string{"eth_chainId", "evm_setAutomine", "evm_setIntervalMining"}, *methods)
		assert.NotNil(t, manager.(*Manager).opts)
	})

	t.Run("chain id mismatch", func(t *testing.T) {
		_, url := newChainNode(t, "0x1")
		_, err := factory.Open(context.Background(), &config.Network{Name: "localhost", RPCURL: url, Local: true, ChainID: 31337})
		assert.ErrorContains(t, err, "chain ID mismatch")
	})

	t.Run("remote network without signer can still read", func(t *testing.T) {
		_, url := newChainNode(t, "0x13881")
		manager, err := factory.Open(context.Background(), &config.Network{Name: "polygon_mumbai", RPCURL: url})
		require.NoError(t, err)
		defer manager.Close()
		assert.Nil(t, manager.(*Manager).opts)
	})

	t.Run("invalid key fails before dialing", func(t *testing.T) {
		_, err := factory.Open(context.Background(), &config.Network{Name: "polygon_mumbai", RPCURL: "http://127.0.0.1:1", Accounts: []string{"0xzz"}})
		assert.ErrorContains(t, err, "invalid private key")
	})
}

func TestFactory_OpenReader(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	factory := NewFactory(&config.RuntimeConfig{}, noArtifacts{}, &memoryManifests{manifests: map[string]*models.ImplementationManifest{}}, log)

	t.Run("ignores keys and mining settings", func(t *testing.T) {
		methods, url := newChainNode(t, "0x7a69")
		network := &config.Network{
			Name:     "hardhat",
			RPCURL:   url,
			Local:    true,
			Accounts: []string{"0xzz"},
			Mining:   &config.MiningConfig{Auto: false, Interval: []uint64{100, 3000}},
		}

		reader, err := factory.OpenReader(context.Background(), network)
		require.NoError(t, err)
		defer reader.Close()

		assert.Equal(t, []string{"eth_chainId"}, *methods)
		assert.Equal(t, uint64(31337), reader.(*Manager).chainID)
	})

	t.Run("chain id mismatch", func(t *testing.T) {
		_, url := newChainNode(t, "0x1")
		_, err := factory.OpenReader(context.Background(), &config.Network{Name: "localhost", RPCURL: url, ChainID: 31337})
		assert.ErrorContains(t, err, "chain ID mismatch")
	})
}
