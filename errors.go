package fibdapp

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure conditions.
var (
	// ErrProviderUnavailable indicates no provider could be acquired.
	ErrProviderUnavailable = errors.New("fibdapp: provider unavailable")

	// ErrBindingUnset indicates a call was attempted before the contract was bound.
	ErrBindingUnset = errors.New("fibdapp: contract binding not set")

	// ErrNoDeployment indicates the artifact has no address for the active network.
	ErrNoDeployment = errors.New("fibdapp: contract not deployed on this network")

	// ErrAlreadyBootstrapped indicates Bootstrap was called on a populated session.
	ErrAlreadyBootstrapped = errors.New("fibdapp: session already bootstrapped")

	// ErrSessionClosed indicates the session has been torn down.
	ErrSessionClosed = errors.New("fibdapp: session closed")

	// ErrNoReturnValue indicates the contract call returned nothing.
	ErrNoReturnValue = errors.New("fibdapp: call returned no value")
)

// ProviderError wraps a failure to acquire a provider.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%v: %v", ErrProviderUnavailable, e.Err)
}

// Is reports ErrProviderUnavailable as a match.
func (e *ProviderError) Is(target error) bool {
	return target == ErrProviderUnavailable
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// CallError indicates a remote contract call failed.
type CallError struct {
	Method string
	Input  string
	Err    error
}

func (e *CallError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("fibdapp: call %s(%s): %v", e.Method, e.Input, e.Err)
	}
	return fmt.Sprintf("fibdapp: call %s: %v", e.Method, e.Err)
}

func (e *CallError) Unwrap() error {
	return e.Err
}

// ArgumentError indicates a raw argument could not be encoded for its ABI type.
type ArgumentError struct {
	Method string
	Index  int
	Type   string
	Err    error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("fibdapp: argument %d for method %q (%s): %v", e.Index, e.Method, e.Type, e.Err)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// MethodNotFoundError indicates the ABI doesn't have the requested method.
type MethodNotFoundError struct {
	Method string
}

func (e *MethodNotFoundError) Error() string {
	return fmt.Sprintf("fibdapp: method %q not found in ABI", e.Method)
}

// ArtifactError indicates a contract artifact could not be parsed.
type ArtifactError struct {
	Source string
	Err    error
}

func (e *ArtifactError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("fibdapp: artifact %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("fibdapp: artifact: %v", e.Err)
}

func (e *ArtifactError) Unwrap() error {
	return e.Err
}
