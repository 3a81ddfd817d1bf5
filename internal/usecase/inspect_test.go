package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tablelandnetwork/tabdeploy/internal/domain"
	"github.com/tablelandnetwork/tabdeploy/internal/domain/config"
	"github.com/tablelandnetwork/tabdeploy/internal/domain/models"
	"github.com/tablelandnetwork/tabdeploy/internal/usecase"
)

func TestShowProxy(t *testing.T) {
	ctx := context.Background()

	t.Run("recorded proxy with live implementation", func(t *testing.T) {
		cfg := hardhatConfig()
		registry := &mockRegistry{}
		registry.On("Lookup", ctx, models.RecordKey{Network: "hardhat"}).Return(proxyAddr, nil)

		manager := &mockManager{}
		manager.On("ImplementationAddress", ctx, proxyAddr).Return(implV1, nil)
		manager.On("Close").Return()
		factory := &mockFactory{}
		factory.On("OpenReader", ctx, cfg.Network).Return(manager, nil)

		record, err := usecase.NewShowProxy(cfg, registry, factory, usecase.NopProgress{}).
			Run(ctx, usecase.ShowProxyParams{})
		require.NoError(t, err)
		assert.Equal(t, proxyAddr, record.Proxy)
		assert.Equal(t, implV1, record.Implementation)
		factory.AssertNotCalled(t, "Open", mock.Anything, mock.Anything)
	})

	t.Run("configured proxy only", func(t *testing.T) {
		cfg := hardhatConfig()
		cfg.Proxy = proxyAddr.Hex()
		registry := &mockRegistry{}
		registry.On("Lookup", ctx, models.RecordKey{Network: "hardhat"}).Return(common.Address{}, domain.ErrNotFound)
		factory := &mockFactory{}

		record, err := usecase.NewShowProxy(cfg, registry, factory, usecase.NopProgress{}).
			Run(ctx, usecase.ShowProxyParams{Offline: true})
		require.NoError(t, err)
		assert.Equal(t, common.Address{}, record.Proxy)
		assert.Equal(t, proxyAddr.Hex(), record.Configured)
		factory.AssertNotCalled(t, "OpenReader", mock.Anything, mock.Anything)
	})

	t.Run("nothing recorded", func(t *testing.T) {
		cfg := hardhatConfig()
		registry := &mockRegistry{}
		registry.On("Lookup", ctx, models.RecordKey{Network: "hardhat", Record: "gov"}).Return(common.Address{}, domain.ErrNotFound)

		_, err := usecase.NewShowProxy(cfg, registry, &mockFactory{}, usecase.NopProgress{}).
			Run(ctx, usecase.ShowProxyParams{Record: "gov"})
		var missing domain.MissingConfigError
		assert.True(t, errors.As(err, &missing))
	})
}

func TestListAccounts(t *testing.T) {
	ctx := context.Background()
	signer := common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	other := common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")

	t.Run("deduplicates node accounts", func(t *testing.T) {
		cfg := hardhatConfig()
		lister := &mockAccountLister{}
		lister.On("SignerAddresses", cfg.Network).Return([]common.Address{signer}, nil)
		lister.On("NodeAccounts", ctx, cfg.Network).Return([]common.Address{signer, other}, nil)

		result, err := usecase.NewListAccounts(cfg, lister, discardLogger()).Run(ctx)
		require.NoError(t, err)
		require.Len(t, result.Accounts, 2)
		assert.Equal(t, usecase.AccountInfo{Address: signer, Source: usecase.AccountSourceSigner}, result.Accounts[0])
		assert.Equal(t, usecase.AccountInfo{Address: other, Source: usecase.AccountSourceNode}, result.Accounts[1])
	})

	t.Run("unreachable node with signers is a warning", func(t *testing.T) {
		cfg := hardhatConfig()
		lister := &mockAccountLister{}
		lister.On("SignerAddresses", cfg.Network).Return([]common.Address{signer}, nil)
		lister.On("NodeAccounts", ctx, cfg.Network).Return([]common.Address(nil), errors.New("connection refused"))

		result, err := usecase.NewListAccounts(cfg, lister, discardLogger()).Run(ctx)
		require.NoError(t, err)
		assert.Len(t, result.Accounts, 1)
		assert.Len(t, result.Warnings, 1)
	})

	t.Run("unreachable node without signers fails", func(t *testing.T) {
		cfg := hardhatConfig()
		lister := &mockAccountLister{}
		lister.On("SignerAddresses", cfg.Network).Return([]common.Address(nil), nil)
		lister.On("NodeAccounts", ctx, cfg.Network).Return([]common.Address(nil), errors.New("connection refused"))

		_, err := usecase.NewListAccounts(cfg, lister, discardLogger()).Run(ctx)
		assert.Error(t, err)
	})
}

func TestListNetworks(t *testing.T) {
	ctx := context.Background()
	cfg := hardhatConfig()
	cfg.Networks["localhost"] = &config.Network{Name: "localhost", RPCURL: "http://127.0.0.1:8546", Local: true, ChainID: 1}
	cfg.Networks["polygon_mumbai"] = &config.Network{Name: "polygon_mumbai"}

	prober := &mockProber{}
	prober.On("ChainID", ctx, "http://127.0.0.1:8545").Return(uint64(31337), nil)
	prober.On("ChainID", ctx, "http://127.0.0.1:8546").Return(uint64(31337), nil)

	result, err := usecase.NewListNetworks(cfg, prober).Run(ctx)
	require.NoError(t, err)
	require.Len(t, result.Networks, 3)

	hardhat := result.Networks[0]
	assert.Equal(t, "hardhat", hardhat.Name)
	assert.True(t, hardhat.Selected)
	assert.Equal(t, uint64(31337), hardhat.ChainID)
	assert.NoError(t, hardhat.Error)

	localhost := result.Networks[1]
	assert.ErrorContains(t, localhost.Error, "chain id mismatch")

	mumbai := result.Networks[2]
	assert.Equal(t, "polygon_mumbai", mumbai.Name)
	assert.EqualError(t, mumbai.Error, "missing provider for 'polygon_mumbai'")
	prober.AssertNumberOfCalls(t, "ChainID", 2)
}

func TestShowConfig_RedactsSecrets(t *testing.T) {
	cfg := mumbaiConfig()
	cfg.Network.Accounts = []string{"0xdeadbeef"}
	cfg.Etherscan.APIKey = "scan-key"
	cfg.Timeout = 5 * time.Minute

	view, err := usecase.NewShowConfig(cfg).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "polygon_mumbai", view.Network)
	assert.Equal(t, "5m0s", view.Timeout)
	assert.Equal(t, "<redacted>", view.Etherscan)
	mumbai := view.Networks["polygon_mumbai"]
	assert.Equal(t, "https://polygon-mumbai.g.alchemy.com/v2/<redacted>", mumbai.URL)
	assert.Equal(t, []string{"<redacted>"}, mumbai.Accounts)
}
