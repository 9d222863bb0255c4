package metrics

import (
	"time"

	"mercator-hq/callisto/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// CommandMetrics tracks command invocations.
type CommandMetrics struct {
	invocationsTotal *prometheus.CounterVec
	duration         *prometheus.HistogramVec
}

// NewCommandMetrics creates and registers command metrics.
func NewCommandMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *CommandMetrics {
	cm := &CommandMetrics{
		invocationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "command_invocations_total",
				Help:      "Total number of command invocations",
			},
			[]string{"command", "mode", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "command_duration_seconds",
				Help:      "Duration of command invocations in seconds",
				Buckets:   cfg.CommandDurationBuckets,
			},
			[]string{"command", "mode"},
		),
	}

	registry.MustRegister(cm.invocationsTotal, cm.duration)
	return cm
}

// Record records one invocation.
func (cm *CommandMetrics) Record(command, mode, outcome string, duration time.Duration) {
	cm.invocationsTotal.WithLabelValues(command, mode, outcome).Inc()
	cm.duration.WithLabelValues(command, mode).Observe(duration.Seconds())
}
