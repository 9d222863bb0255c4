package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"mercator-hq/callisto/pkg/config"
	"mercator-hq/callisto/pkg/upstream"

	"github.com/prometheus/client_golang/prometheus"
)

// UpstreamMetrics tracks round trips to third-party APIs.
type UpstreamMetrics struct {
	requestsTotal *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	errorsTotal   *prometheus.CounterVec
}

// NewUpstreamMetrics creates and registers upstream metrics.
func NewUpstreamMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *UpstreamMetrics {
	um := &UpstreamMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "upstream_requests_total",
				Help:      "Total number of upstream requests by response status",
			},
			[]string{"service", "status"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "upstream_latency_seconds",
				Help:      "Upstream round trip latency in seconds",
				Buckets:   cfg.UpstreamLatencyBuckets,
			},
			[]string{"service"},
		),
		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "upstream_errors_total",
				Help:      "Total number of failed upstream requests by error type",
			},
			[]string{"service", "error_type"},
		),
	}

	registry.MustRegister(um.requestsTotal, um.latency, um.errorsTotal)
	return um
}

// Record records one round trip.
func (um *UpstreamMetrics) Record(service string, status int, latency time.Duration, err error) {
	um.requestsTotal.WithLabelValues(service, statusLabel(status)).Inc()
	um.latency.WithLabelValues(service).Observe(latency.Seconds())

	if errorType := classify(status, err); errorType != "" {
		um.errorsTotal.WithLabelValues(service, errorType).Inc()
	}
}

func statusLabel(status int) string {
	if status == 0 {
		return "none"
	}
	return strconv.Itoa(status)
}

// classify maps a round trip onto the upstream error taxonomy.
func classify(status int, err error) string {
	if err != nil {
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			return "timeout"
		}
		return upstream.ErrorType(err)
	}
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return "auth"
	case status == http.StatusNotFound:
		return "not_found"
	case status >= 400:
		return "status"
	}
	return ""
}
