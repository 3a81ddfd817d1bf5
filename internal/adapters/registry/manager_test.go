package registry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tablelandnetwork/tabdeploy/internal/domain"
	"github.com/tablelandnetwork/tabdeploy/internal/domain/config"
	"github.com/tablelandnetwork/tabdeploy/internal/domain/models"
)

func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	root := t.TempDir()
	return NewManager(&config.RuntimeConfig{ProjectRoot: root}), root
}

func TestManager_RecordWritesSingleLine(t *testing.T) {
	m, root := newTestManager(t)
	ctx := context.Background()
	proxy := common.HexToAddress("0x5fc8d32690cc91d4c39d9d3abcbd16989f875707")

	require.NoError(t, m.Record(ctx, models.RecordKey{Network: "hardhat"}, proxy))

	data, err := os.ReadFile(filepath.Join(root, ".hardhat.env"))
	require.NoError(t, err)
	assert.Equal(t, "CONTRACT=0x5FC8d32690cc91D4c39d9d3abcBD16989F875707", string(data))
}

func TestManager_RecordOverwrites(t *testing.T) {
	m, root := newTestManager(t)
	ctx := context.Background()
	key := models.RecordKey{Network: "polygon_mumbai", Record: "gov"}

	require.NoError(t, m.Record(ctx, key, common.HexToAddress("0x01")))
	require.NoError(t, m.Record(ctx, key, common.HexToAddress("0x02")))

	data, err := os.ReadFile(filepath.Join(root, ".polygon_mumbai.gov.env"))
	require.NoError(t, err)
	assert.Equal(t, "CONTRACT=0x0000000000000000000000000000000000000002", string(data))

	got, err := m.Lookup(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0x02"), got)
}

func TestManager_Lookup(t *testing.T) {
	tests := []struct {
		name    string
		content *string
		want    common.Address
		wantErr error
	}{
		{
			name:    "missing file",
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "empty value",
			content: ptr("CONTRACT="),
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "no contract key",
			content: ptr("OTHER=0x5FC8d32690cc91D4c39d9d3abcBD16989F875707\n"),
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "not an address",
			content: ptr("CONTRACT=hello"),
			wantErr: domain.ErrInvalidAddress,
		},
		{
			name:    "trailing newline and quotes",
			content: ptr("CONTRACT=\"0x5FC8d32690cc91D4c39d9d3abcBD16989F875707\"\n"),
			want:    common.HexToAddress("0x5FC8d32690cc91D4c39d9d3abcBD16989F875707"),
		},
		{
			name:    "lowercase address",
			content: ptr("CONTRACT=0x5fc8d32690cc91d4c39d9d3abcbd16989f875707"),
			want:    common.HexToAddress("0x5FC8d32690cc91D4c39d9d3abcBD16989F875707"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, root := newTestManager(t)
			if tt.content != nil {
				require.NoError(t, os.WriteFile(filepath.Join(root, ".hardhat.env"), []byte(*tt.content), 0644))
			}

			got, err := m.Lookup(context.Background(), models.RecordKey{Network: "hardhat"})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestManager_RecordRequiresNetwork(t *testing.T) {
	m, _ := newTestManager(t)
	assert.Error(t, m.Record(context.Background(), models.RecordKey{}, common.Address{}))
}

func ptr(s string) *string { return &s }
