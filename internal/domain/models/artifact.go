package models

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// HardhatArtifactFormat is the _format value of Hardhat compilation artifacts
const HardhatArtifactFormat = "hh-sol-artifact-1"

// Artifact is a compiled contract ready for deployment
type Artifact struct {
	ContractName     string
	SourceName       string
	Path             string // artifact file on disk
	ABI              abi.ABI
	Bytecode         []byte
	DeployedBytecode []byte
}

// FullyQualifiedName returns "sourceName:ContractName"
func (a *Artifact) FullyQualifiedName() string {
	if a.SourceName == "" {
		return a.ContractName
	}
	return a.SourceName + ":" + a.ContractName
}

// BytecodeHash identifies an implementation by its creation code
func (a *Artifact) BytecodeHash() common.Hash {
	return crypto.Keccak256Hash(a.Bytecode)
}
