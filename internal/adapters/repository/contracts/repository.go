package contracts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/samber/lo"
	internalconfig "github.com/tablelandnetwork/tabdeploy/internal/config"
	"github.com/tablelandnetwork/tabdeploy/internal/domain"
	"github.com/tablelandnetwork/tabdeploy/internal/domain/config"
	"github.com/tablelandnetwork/tabdeploy/internal/domain/models"
	"github.com/tablelandnetwork/tabdeploy/internal/usecase"
)

// hardhatArtifact is the on-disk layout of a Hardhat compilation artifact
type hardhatArtifact struct {
	Format           string          `json:"_format"`
	ContractName     string          `json:"contractName"`
	SourceName       string          `json:"sourceName"`
	ABI              json.RawMessage `json:"abi"`
	Bytecode         string          `json:"bytecode"`
	DeployedBytecode string          `json:"deployedBytecode"`
}

// Repository discovers Hardhat artifacts below the artifacts directory
type Repository struct {
	artifactsDir  string
	contracts     map[string]string   // key: "sourceName:ContractName" -> artifact path
	contractNames map[string][]string // key: contract name -> fully qualified names
	log           *slog.Logger
	mu            sync.RWMutex
	indexed       bool
}

// NewRepository creates a new artifact repository
func NewRepository(cfg *config.RuntimeConfig, log *slog.Logger) *Repository {
	return &Repository{
		artifactsDir:  cfg.ArtifactsDir,
		log:           log,
		contracts:     make(map[string]string),
		contractNames: make(map[string][]string),
	}
}

// Index discovers all artifacts. Artifacts are never compiled here: run
// `npx hardhat compile` first.
func (r *Repository) Index() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexed {
		return nil
	}

	if _, err := os.Stat(r.artifactsDir); os.IsNotExist(err) {
		return fmt.Errorf("artifacts directory %s not found, compile the contracts first: %w", r.artifactsDir, domain.ErrArtifactNotFound)
	}

	err := filepath.Walk(r.artifactsDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if info.Name() == "build-info" {
				return filepath.SkipDir
			}
			return nil
		}

		// Skip non-JSON and debug files
		if filepath.Ext(path) != ".json" || strings.HasSuffix(path, ".dbg.json") {
			return nil
		}

		r.indexArtifact(path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to index artifacts: %w", err)
	}

	r.indexed = true
	return nil
}

// indexArtifact records the names of one artifact file. Files that are not
// Hardhat artifacts are skipped.
func (r *Repository) indexArtifact(path string) {
	artifact, err := readArtifact(path)
	if err != nil {
		r.log.Debug("skipping file", "path", path, "error", err)
		return
	}
	if artifact.ContractName == "" {
		return
	}

	fqn := artifact.SourceName + ":" + artifact.ContractName
	r.contracts[fqn] = path
	r.contractNames[artifact.ContractName] = append(r.contractNames[artifact.ContractName], fqn)
	r.log.Debug("indexed artifact", "contract", fqn)
}

// GetArtifact loads a contract by name or by "sourceName:ContractName"
func (r *Repository) GetArtifact(ctx context.Context, name string) (*models.Artifact, error) {
	if err := r.Index(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	path, ok := r.contracts[name]
	if !ok {
		fqns := r.contractNames[name]
		switch len(fqns) {
		case 0:
			return nil, domain.UnknownNameError{
				Kind:        "contract",
				Name:        name,
				Suggestions: internalconfig.Suggest(name, lo.Keys(r.contractNames)),
				Err:         domain.ErrArtifactNotFound,
			}
		case 1:
			path = r.contracts[fqns[0]]
		default:
			sorted := append([]string(nil), fqns...)
			sort.Strings(sorted)
			return nil, fmt.Errorf("contract name %s is ambiguous, use one of: %s", name, strings.Join(sorted, ", "))
		}
	}

	return loadArtifact(path)
}

func readArtifact(path string) (*hardhatArtifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var artifact hardhatArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, err
	}
	if artifact.Format != models.HardhatArtifactFormat {
		return nil, fmt.Errorf("unsupported artifact format %q", artifact.Format)
	}

	return &artifact, nil
}

// loadArtifact parses the ABI and bytecode of an artifact file
func loadArtifact(path string) (*models.Artifact, error) {
	raw, err := readArtifact(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %s: %w", path, err)
	}

	parsedABI, err := abi.JSON(bytes.NewReader(raw.ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI of %s: %w", raw.ContractName, err)
	}

	bytecode, err := hexutil.Decode(raw.Bytecode)
	if err != nil {
		return nil, fmt.Errorf("invalid bytecode in %s: %w", path, err)
	}
	if len(bytecode) == 0 {
		return nil, fmt.Errorf("%s is abstract or an interface and cannot be deployed", raw.ContractName)
	}

	var deployed []byte
	if raw.DeployedBytecode != "" {
		if deployed, err = hexutil.Decode(raw.DeployedBytecode); err != nil {
			return nil, fmt.Errorf("invalid deployed bytecode in %s: %w", path, err)
		}
	}

	return &models.Artifact{
		ContractName:     raw.ContractName,
		SourceName:       raw.SourceName,
		Path:             path,
		ABI:              parsedABI,
		Bytecode:         bytecode,
		DeployedBytecode: deployed,
	}, nil
}

// Ensure the adapter implements the interface
var _ usecase.ArtifactRepository = (*Repository)(nil)
