package metrics

import (
	"mercator-hq/callisto/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// JournalMetrics tracks the invocation journal.
type JournalMetrics struct {
	dropped prometheus.Counter
}

// NewJournalMetrics creates and registers journal metrics.
func NewJournalMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *JournalMetrics {
	jm := &JournalMetrics{
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "journal_entries_dropped_total",
			Help:      "Journal entries dropped because the write buffer was full",
		}),
	}

	registry.MustRegister(jm.dropped)
	return jm
}
