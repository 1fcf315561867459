package fibdapp

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "fibdapp"

// Calculation outcomes used as the "outcome" label.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics records session activity. A nil *Metrics records nothing.
type Metrics struct {
	accountPolls      prometheus.Counter
	accountPollErrors prometheus.Counter
	accountChanges    prometheus.Counter
	calculations      *prometheus.CounterVec
	bootstrapDuration prometheus.Histogram
}

// NewMetrics creates the session metrics and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		accountPolls: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "account_polls_total",
			Help:      "Account list reads performed by the watcher.",
		}),
		accountPollErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "account_poll_errors_total",
			Help:      "Account list reads that failed.",
		}),
		accountChanges: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "account_changes_total",
			Help:      "Primary account changes observed.",
		}),
		calculations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "calculations_total",
			Help:      "fib calls by outcome.",
		}, []string{"outcome"}),
		bootstrapDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "bootstrap_duration_seconds",
			Help:      "Time from connect to a bound contract.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) poll() {
	if m != nil {
		m.accountPolls.Inc()
	}
}

func (m *Metrics) pollError() {
	if m != nil {
		m.accountPollErrors.Inc()
	}
}

func (m *Metrics) accountChange() {
	if m != nil {
		m.accountChanges.Inc()
	}
}

func (m *Metrics) calculation(outcome string) {
	if m != nil {
		m.calculations.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) bootstrap(d time.Duration) {
	if m != nil {
		m.bootstrapDuration.Observe(d.Seconds())
	}
}
