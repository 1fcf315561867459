package fibdapp

import (
	"time"

	"go.uber.org/zap"
)

// DefaultPollInterval is how often the AccountWatcher re-reads the accounts.
const DefaultPollInterval = time.Second

// SessionOption configures a Session.
type SessionOption func(*sessionConfig)

// sessionConfig holds configuration for a Session and its watcher.
type sessionConfig struct {
	logger       *zap.Logger
	metrics      *Metrics
	observers    []Observer
	pollInterval time.Duration
	callTimeout  time.Duration
}

// defaultSessionConfig returns the default session configuration.
func defaultSessionConfig() *sessionConfig {
	return &sessionConfig{
		logger:       zap.NewNop(),
		pollInterval: DefaultPollInterval,
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(logger *zap.Logger) SessionOption {
	return func(c *sessionConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics records session activity on m.
func WithMetrics(m *Metrics) SessionOption {
	return func(c *sessionConfig) {
		c.metrics = m
	}
}

// WithObserver registers fn to receive session events. Observers are called
// synchronously, in registration order.
func WithObserver(fn Observer) SessionOption {
	return func(c *sessionConfig) {
		if fn != nil {
			c.observers = append(c.observers, fn)
		}
	}
}

// WithPollInterval sets the account polling interval.
// Non-positive values keep the default of one second.
func WithPollInterval(d time.Duration) SessionOption {
	return func(c *sessionConfig) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

// WithCallTimeout bounds each Calculate call. Zero means no bound beyond the
// caller's context.
func WithCallTimeout(d time.Duration) SessionOption {
	return func(c *sessionConfig) {
		if d >= 0 {
			c.callTimeout = d
		}
	}
}
