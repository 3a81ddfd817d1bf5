package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrArtifactNotFound is returned when a compiled artifact can't be found
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrUnknownNetwork is returned when a network is not configured
	ErrUnknownNetwork = errors.New("unknown network")

	// ErrNoSigner is returned when a transaction is needed but no account is configured
	ErrNoSigner = errors.New("no signer configured")

	// ErrTxReverted is returned when a mined transaction has a failed status
	ErrTxReverted = errors.New("transaction reverted")

	// ErrAborted is returned when the user declines a confirmation prompt
	ErrAborted = errors.New("aborted by user")
)

// MissingConfigError reports a required value that is absent or empty.
// It is always fatal and raised before any network call.
type MissingConfigError struct {
	What    string
	Network string
}

func (e MissingConfigError) Error() string {
	if e.Network == "" {
		return fmt.Sprintf("missing %s", e.What)
	}
	return fmt.Sprintf("missing %s for '%s'", e.What, e.Network)
}

// InvariantViolationError signals a logic error in a collaborator, such as a
// proxy whose address changed across an upgrade.
type InvariantViolationError struct {
	Msg string
}

func (e InvariantViolationError) Error() string {
	return "assertion failed: " + e.Msg
}

// UnknownNameError is returned when a lookup by name fails. Suggestions holds
// close matches for "did you mean" hints.
type UnknownNameError struct {
	Kind        string
	Name        string
	Suggestions []string
	Err         error
}

func (e UnknownNameError) Error() string {
	msg := fmt.Sprintf("%s '%s' not found", e.Kind, e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean: %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

func (e UnknownNameError) Unwrap() error {
	return e.Err
}
