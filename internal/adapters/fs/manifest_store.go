package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tablelandnetwork/tabdeploy/internal/domain/config"
	"github.com/tablelandnetwork/tabdeploy/internal/domain/models"
)

// ManifestStoreAdapter persists implementation manifests as
// <deployments>/<network>.json
type ManifestStoreAdapter struct {
	dir string
}

// NewManifestStoreAdapter creates a new ManifestStoreAdapter
func NewManifestStoreAdapter(cfg *config.RuntimeConfig) *ManifestStoreAdapter {
	return &ManifestStoreAdapter{
		dir: cfg.DeploymentsDir,
	}
}

// Path returns the manifest file of network
func (s *ManifestStoreAdapter) Path(network string) string {
	return filepath.Join(s.dir, network+".json")
}

// Load reads the manifest of network. Returns an empty manifest if the file does not exist.
func (s *ManifestStoreAdapter) Load(_ context.Context, network string) (*models.ImplementationManifest, error) {
	path := s.Path(network)
	exists, err := FileExists(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat manifest: %w", err)
	}
	if !exists {
		return models.NewImplementationManifest(network), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest models.ImplementationManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	if manifest.Implementations == nil {
		manifest.Implementations = make(map[string]models.ImplementationEntry)
	}
	if manifest.Network == "" {
		manifest.Network = network
	}

	return &manifest, nil
}

// Save writes the manifest to disk, creating the directory if needed.
func (s *ManifestStoreAdapter) Save(_ context.Context, manifest *models.ImplementationManifest) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := WriteFileAtomic(s.Path(manifest.Network), append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}
