package usecase

import (
	"context"
)

const (
	// VRFContract is the randomness consumer deployed by deploy-vrf
	VRFContract = "TablelandVRF"
	// VRFRecord is the record the VRF proxy is written to
	VRFRecord = "vrf"

	DefaultVRFBaseURI     = "https://testnet.tableland.network/query?s="
	DefaultVRFExternalURI = "not.implemented.com"
)

// DeployVRF deploys the VRF consumer proxy
type DeployVRF struct {
	deploy *DeployProxy
}

// NewDeployVRF creates a new deploy VRF use case
func NewDeployVRF(deploy *DeployProxy) *DeployVRF {
	return &DeployVRF{deploy: deploy}
}

// DeployVRFParams contains the initializer arguments of the VRF consumer
type DeployVRFParams struct {
	BaseURI     string
	ExternalURI string
}

// Run deploys the proxy with initialize(baseURI, externalURI)
func (uc *DeployVRF) Run(ctx context.Context, params DeployVRFParams) (*DeployProxyResult, error) {
	if params.BaseURI == "" {
		params.BaseURI = DefaultVRFBaseURI
	}
	if params.ExternalURI == "" {
		params.ExternalURI = DefaultVRFExternalURI
	}

	return uc.deploy.Run(ctx, DeployProxyParams{
		Contract: VRFContract,
		Record:   VRFRecord,
		InitArgs: []string{params.BaseURI, params.ExternalURI},
	})
}
