package registry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	atomicfs "github.com/tablelandnetwork/tabdeploy/internal/adapters/fs"
	"github.com/tablelandnetwork/tabdeploy/internal/domain"
	"github.com/tablelandnetwork/tabdeploy/internal/domain/config"
	"github.com/tablelandnetwork/tabdeploy/internal/domain/models"
	"github.com/tablelandnetwork/tabdeploy/internal/usecase"
)

// ContractKey is the single variable stored in a network env file
const ContractKey = "CONTRACT"

// Manager stores proxy addresses in per-network env files below the project
// root: .<network>.env for the primary record and .<network>.<record>.env
// for the others.
type Manager struct {
	rootDir string
	mu      sync.Mutex
}

// NewManager creates a new env file registry rooted at the project root
func NewManager(cfg *config.RuntimeConfig) *Manager {
	return &Manager{rootDir: cfg.ProjectRoot}
}

// Path returns the env file holding key
func (m *Manager) Path(key models.RecordKey) string {
	return key.Path(m.rootDir)
}

// Lookup reads the proxy address recorded for key
func (m *Manager) Lookup(_ context.Context, key models.RecordKey) (common.Address, error) {
	path := m.Path(key)

	env, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return common.Address{}, fmt.Errorf("%s: %w", key.FileName(), domain.ErrNotFound)
		}
		return common.Address{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	value := strings.TrimSpace(env[ContractKey])
	if value == "" {
		return common.Address{}, fmt.Errorf("%s: %w", key.FileName(), domain.ErrNotFound)
	}
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("%w in %s: %q", domain.ErrInvalidAddress, key.FileName(), value)
	}

	return common.HexToAddress(value), nil
}

// Record overwrites the env file of key with the proxy address. The file
// holds exactly one line with no trailing newline.
func (m *Manager) Record(_ context.Context, key models.RecordKey, proxy common.Address) error {
	if key.Network == "" {
		return fmt.Errorf("cannot record proxy without a network")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	content := ContractKey + "=" + proxy.Hex()
	return atomicfs.WriteFileAtomic(m.Path(key), []byte(content), 0644)
}

// Ensure Manager implements AddressRegistry
var _ usecase.AddressRegistry = (*Manager)(nil)
