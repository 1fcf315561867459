package fibdapp

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// AccountReader reads the active account list.
type AccountReader interface {
	Accounts(ctx context.Context) ([]common.Address, error)
}

// WatcherOption configures an AccountWatcher.
type WatcherOption func(*AccountWatcher)

// WatchInterval sets the polling interval. Non-positive values are ignored.
func WatchInterval(d time.Duration) WatcherOption {
	return func(w *AccountWatcher) {
		if d > 0 {
			w.interval = d
		}
	}
}

// WatchLogger sets the logger. A nil logger is ignored.
func WatchLogger(logger *zap.Logger) WatcherOption {
	return func(w *AccountWatcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WatchMetrics records polls on m.
func WatchMetrics(m *Metrics) WatcherOption {
	return func(w *AccountWatcher) {
		w.metrics = m
	}
}

// AccountWatcher polls an AccountReader and reports when the primary account
// changes. Only the first entry is compared; when it differs, the whole list
// is handed to onChange.
//
// Each tick runs in its own goroutine and ticks are not serialized, so a read
// slower than the interval overlaps the next one. onChange is called with the
// watcher's comparison lock held and must not call back into the watcher.
type AccountWatcher struct {
	reader   AccountReader
	onChange func([]common.Address)
	interval time.Duration
	logger   *zap.Logger
	metrics  *Metrics

	pollMu sync.Mutex
	last   []common.Address

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped bool
	wg      sync.WaitGroup
}

// NewAccountWatcher creates a watcher seeded with the accounts already known.
func NewAccountWatcher(reader AccountReader, initial []common.Address, onChange func([]common.Address), opts ...WatcherOption) *AccountWatcher {
	w := &AccountWatcher{
		reader:   reader,
		onChange: onChange,
		interval: DefaultPollInterval,
		logger:   zap.NewNop(),
		last:     slices.Clone(initial),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Interval returns the polling interval.
func (w *AccountWatcher) Interval() time.Duration {
	return w.interval
}

// Start begins polling in the background until ctx is cancelled or Stop is
// called. Starting a running or stopped watcher has no effect.
func (w *AccountWatcher) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil || w.stopped {
		return
	}
	ctx, w.cancel = context.WithCancel(ctx)

	w.wg.Add(1)
	go w.run(ctx)
}

// Stop cancels polling and waits for the loop and every in-flight tick to
// return. After Stop returns onChange is not called again.
func (w *AccountWatcher) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.stopped = true
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}

func (w *AccountWatcher) run(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.wg.Add(1)
			go w.tick(ctx)
		}
	}
}

func (w *AccountWatcher) tick(ctx context.Context) {
	defer w.wg.Done()
	if _, err := w.Poll(ctx); err != nil && ctx.Err() == nil {
		w.logger.Warn("account poll failed", zap.Error(err))
	}
}

// Poll performs one read and comparison synchronously. It reports whether
// the primary account changed.
func (w *AccountWatcher) Poll(ctx context.Context) (bool, error) {
	w.metrics.poll()
	accounts, err := w.reader.Accounts(ctx)
	if err != nil {
		w.metrics.pollError()
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	w.pollMu.Lock()
	defer w.pollMu.Unlock()

	if samePrimary(w.last, accounts) {
		return false, nil
	}

	prev, _ := primaryOf(w.last)
	next, _ := primaryOf(accounts)
	w.last = slices.Clone(accounts)
	w.metrics.accountChange()
	w.logger.Info("primary account changed",
		zap.String("from", prev.Hex()),
		zap.String("to", next.Hex()),
		zap.Int("accounts", len(accounts)))

	if w.onChange != nil {
		w.onChange(slices.Clone(accounts))
	}
	return true, nil
}
