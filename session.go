package fibdapp

import (
	"math/big"
	"slices"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// EventKind identifies what changed in a Session.
type EventKind uint8

const (
	// EventReady is emitted once Bootstrap has bound the contract.
	EventReady EventKind = iota

	// EventAccountsChanged is emitted when the primary account changes.
	EventAccountsChanged

	// EventResult is emitted when a calculation stores a new result.
	EventResult
)

func (k EventKind) String() string {
	switch k {
	case EventReady:
		return "ready"
	case EventAccountsChanged:
		return "accounts_changed"
	case EventResult:
		return "result"
	default:
		return "unknown"
	}
}

// Event describes a session change. Accounts is set for EventReady and
// EventAccountsChanged, NetworkID for EventReady, Result for EventResult.
type Event struct {
	Kind      EventKind
	Accounts  []common.Address
	NetworkID *big.Int
	Result    string
}

// Observer receives session events.
type Observer func(Event)

// Session holds the connection state shared by the bootstrapper, the account
// watcher and the calculation relay.
type Session struct {
	cfg *sessionConfig

	mu            sync.RWMutex
	provider      Provider
	accounts      []common.Address
	networkID     *big.Int
	contract      *Contract
	watcher       *AccountWatcher
	result        string
	hasResult     bool
	bootstrapping bool
	closed        bool
}

// NewSession creates an empty session. It is not ready until Bootstrap
// succeeds.
func NewSession(opts ...SessionOption) *Session {
	cfg := defaultSessionConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Session{cfg: cfg}
}

// Ready reports whether a provider has been acquired and the contract bound.
func (s *Session) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.provider != nil && !s.closed
}

// Provider returns the provider handle, or nil before Bootstrap.
func (s *Session) Provider() Provider {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.provider
}

// Accounts returns a copy of the active account list.
func (s *Session) Accounts() []common.Address {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.accounts)
}

// PrimaryAccount returns the first active account, if any.
func (s *Session) PrimaryAccount() (common.Address, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return primaryOf(s.accounts)
}

// NetworkID returns the network id read at bootstrap, or nil.
func (s *Session) NetworkID() *big.Int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.networkID == nil {
		return nil
	}
	return new(big.Int).Set(s.networkID)
}

// Contract returns the contract binding, or nil before Bootstrap.
func (s *Session) Contract() *Contract {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.contract
}

// Result returns the last calculation result, if any.
func (s *Session) Result() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result, s.hasResult
}

// Close stops the account watcher and releases the provider. It is safe to
// call more than once.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	watcher := s.watcher
	provider := s.provider
	s.mu.Unlock()

	if watcher != nil {
		watcher.Stop()
	}
	if provider != nil {
		provider.Close()
	}
	s.cfg.logger.Debug("session closed")
	return nil
}

// setAccounts replaces the account list and notifies observers.
func (s *Session) setAccounts(accounts []common.Address) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.accounts = accounts
	s.mu.Unlock()

	s.emit(Event{Kind: EventAccountsChanged, Accounts: slices.Clone(accounts)})
}

func (s *Session) emit(ev Event) {
	for _, fn := range s.cfg.observers {
		fn(ev)
	}
}

// primaryOf returns the first account of the list, if any.
func primaryOf(accounts []common.Address) (common.Address, bool) {
	if len(accounts) == 0 {
		return common.Address{}, false
	}
	return accounts[0], true
}

// samePrimary compares only the first entries. Two empty lists are equal.
func samePrimary(a, b []common.Address) bool {
	pa, oka := primaryOf(a)
	pb, okb := primaryOf(b)
	return oka == okb && pa == pb
}
