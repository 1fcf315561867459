package fibdapp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// Bootstrap acquires a provider through connect, reads the active accounts
// and network id, resolves the deployment of artifact on that network and
// binds the contract. It then starts the account watcher, which runs until
// ctx is cancelled or the session is closed.
//
// A nil artifact means DefaultArtifact. A missing deployment is not an
// error: the binding has no address and calls fail with ErrNoDeployment.
func (s *Session) Bootstrap(ctx context.Context, connect Connector, artifact *Artifact) error {
	s.mu.Lock()
	switch {
	case s.closed:
		s.mu.Unlock()
		return ErrSessionClosed
	case s.provider != nil || s.bootstrapping:
		s.mu.Unlock()
		return ErrAlreadyBootstrapped
	}
	s.bootstrapping = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.bootstrapping = false
		s.mu.Unlock()
	}()

	if artifact == nil {
		artifact = DefaultArtifact()
	}
	logger := s.cfg.logger
	start := time.Now()

	if connect == nil {
		return &ProviderError{Err: errors.New("no connector")}
	}
	provider, err := connect(ctx)
	if err != nil {
		return &ProviderError{Err: err}
	}
	if provider == nil {
		return &ProviderError{Err: errors.New("connector returned no provider")}
	}

	accounts, err := provider.Accounts(ctx)
	if err != nil {
		provider.Close()
		return fmt.Errorf("fibdapp: read accounts: %w", err)
	}

	networkID, err := provider.NetworkID(ctx)
	if err != nil {
		provider.Close()
		return fmt.Errorf("fibdapp: read network id: %w", err)
	}

	var address *common.Address
	if d, ok := artifact.Deployment(networkID); ok {
		addr := d.Address
		address = &addr
	} else {
		logger.Warn("no deployment for network",
			zap.String("contract", artifact.Name()),
			zap.Stringer("network", networkID))
	}
	contract := NewContract(artifact.ABI(), address, provider)

	watcher := NewAccountWatcher(provider, accounts, s.setAccounts,
		WatchInterval(s.cfg.pollInterval),
		WatchLogger(logger),
		WatchMetrics(s.cfg.metrics))

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		provider.Close()
		return ErrSessionClosed
	}
	s.provider = provider
	s.accounts = accounts
	s.networkID = networkID
	s.contract = contract
	s.watcher = watcher
	watcher.Start(ctx)
	s.mu.Unlock()

	s.cfg.metrics.bootstrap(time.Since(start))

	primary, _ := primaryOf(accounts)
	logger.Info("session ready",
		zap.Stringer("network", networkID),
		zap.Int("accounts", len(accounts)),
		zap.String("primary", primary.Hex()),
		zap.Bool("deployed", address != nil))

	s.emit(Event{Kind: EventReady, Accounts: s.Accounts(), NetworkID: s.NetworkID()})
	return nil
}
