package usecase

import (
	"context"
	"fmt"

	"github.com/tablelandnetwork/tabdeploy/internal/domain"
	"github.com/tablelandnetwork/tabdeploy/internal/domain/config"
	"github.com/tablelandnetwork/tabdeploy/internal/domain/models"
)

const (
	// GovernanceContract is the governor deployed on top of the holders token
	GovernanceContract = "TableGov"
	// GovernanceRecord is the record the governor proxy is written to
	GovernanceRecord = "gov"
)

// DeployGovernance deploys the governor proxy, initialised with the token
// proxy recorded for the same network
type DeployGovernance struct {
	cfg      *config.RuntimeConfig
	registry AddressRegistry
	deploy   *DeployProxy
}

// NewDeployGovernance creates a new deploy governance use case
func NewDeployGovernance(cfg *config.RuntimeConfig, registry AddressRegistry, deploy *DeployProxy) *DeployGovernance {
	return &DeployGovernance{
		cfg:      cfg,
		registry: registry,
		deploy:   deploy,
	}
}

// DeployGovernanceParams contains parameters for deploying the governor
type DeployGovernanceParams struct {
	Contract string // defaults to GovernanceContract
}

// Run resolves the token and deploys the governor. A missing token aborts
// before anything touches the network.
func (uc *DeployGovernance) Run(ctx context.Context, params DeployGovernanceParams) (*DeployProxyResult, error) {
	network := uc.cfg.Network
	tokenKey := models.RecordKey{Network: network.Name, Record: models.DefaultRecord}

	token, err := resolveRecordedAddress(ctx, uc.cfg, uc.registry, tokenKey)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.MissingConfigError{What: "token entry", Network: network.Name}
		}
		return nil, fmt.Errorf("failed to resolve token address: %w", err)
	}

	contract := params.Contract
	if contract == "" {
		contract = GovernanceContract
	}

	return uc.deploy.Run(ctx, DeployProxyParams{
		Contract: contract,
		Record:   GovernanceRecord,
		InitArgs: []string{token.Hex()},
	})
}
