package metrics

import (
	"time"

	"mercator-hq/callisto/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Collector owns every callisto metric and the registry they live in.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	commandMetrics  *CommandMetrics
	upstreamMetrics *UpstreamMetrics
	journalMetrics  *JournalMetrics
}

// NewCollector creates a collector. A nil registry gets a fresh one with
// the Go runtime and process collectors attached.
//
// Example:
//
//	cfg := &config.MetricsConfig{Namespace: "callisto"}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	if cfg == nil {
		cfg = &config.MetricsConfig{}
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if len(cfg.CommandDurationBuckets) == 0 {
		cfg.CommandDurationBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
	}
	if len(cfg.UpstreamLatencyBuckets) == 0 {
		cfg.UpstreamLatencyBuckets = []float64{0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
	}

	return &Collector{
		config:          cfg,
		registry:        registry,
		commandMetrics:  NewCommandMetrics(cfg, registry),
		upstreamMetrics: NewUpstreamMetrics(cfg, registry),
		journalMetrics:  NewJournalMetrics(cfg, registry),
	}
}

// ObserveInvocation records one command invocation.
func (c *Collector) ObserveInvocation(command, mode, outcome string, duration time.Duration) {
	if !c.config.IsEnabled() {
		return
	}
	c.commandMetrics.Record(command, mode, outcome, duration)
}

// ObserveUpstream records one upstream round trip. status is 0 when the
// request never got a response.
func (c *Collector) ObserveUpstream(service string, status int, latency time.Duration, err error) {
	if !c.config.IsEnabled() {
		return
	}
	c.upstreamMetrics.Record(service, status, latency, err)
}

// JournalEntryDropped counts a journal entry lost to a full buffer.
func (c *Collector) JournalEntryDropped() {
	if !c.config.IsEnabled() {
		return
	}
	c.journalMetrics.dropped.Inc()
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
