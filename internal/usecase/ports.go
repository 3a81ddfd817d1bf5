package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/tablelandnetwork/tabdeploy/internal/domain/config"
	"github.com/tablelandnetwork/tabdeploy/internal/domain/models"
)

// AddressRegistry persists proxy addresses keyed by network and record
type AddressRegistry interface {
	// Lookup returns domain.ErrNotFound when the record is absent or empty
	// and domain.ErrInvalidAddress when it does not hold an address.
	Lookup(ctx context.Context, key models.RecordKey) (common.Address, error)
	Record(ctx context.Context, key models.RecordKey, proxy common.Address) error
	Path(key models.RecordKey) string
}

// ArtifactRepository provides access to compiled contracts
type ArtifactRepository interface {
	GetArtifact(ctx context.Context, name string) (*models.Artifact, error)
}

// ProxyReader reads proxy state without sending transactions
type ProxyReader interface {
	ImplementationAddress(ctx context.Context, proxy common.Address) (common.Address, error)
	Close()
}

// ProxyManager deploys and upgrades proxies on one network
type ProxyManager interface {
	ProxyReader
	DeployProxy(ctx context.Context, artifact *models.Artifact, initArgs []string) (*models.ProxyDeployment, error)
	UpgradeProxy(ctx context.Context, proxy common.Address, artifact *models.Artifact) (*models.ProxyUpgrade, error)
	GasReport() []models.GasEntry
}

// ProxyManagerFactory connects a ProxyManager to a network. Use cases call it
// only after local validation so that bad input never reaches the node.
type ProxyManagerFactory interface {
	Open(ctx context.Context, network *config.Network) (ProxyManager, error)
	// OpenReader connects without loading a signer or touching node
	// settings such as mining
	OpenReader(ctx context.Context, network *config.Network) (ProxyReader, error)
}

// AccountLister lists the accounts usable on a network
type AccountLister interface {
	SignerAddresses(network *config.Network) ([]common.Address, error)
	NodeAccounts(ctx context.Context, network *config.Network) ([]common.Address, error)
}

// ChainIDProber fetches the chain id served by an RPC endpoint
type ChainIDProber interface {
	ChainID(ctx context.Context, rpcURL string) (uint64, error)
}

// Confirmer asks the user to confirm an outward-facing action
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// Progress stages
const (
	StageResolving = "resolving"
	StageDeploying = "deploying"
	StageUpgrading = "upgrading"
	StageRecording = "recording"
	StageCompleted = "completed"
)
