package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mercator-hq/callisto/pkg/config"
	"mercator-hq/callisto/pkg/upstream"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Namespace:              "test",
		CommandDurationBuckets: []float64{0.1, 0.5, 1.0},
		UpstreamLatencyBuckets: []float64{0.1, 0.5, 1.0},
	}
}

func TestCollector_NewCollector(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()

	collector := NewCollector(cfg, registry)
	if collector.Registry() != registry {
		t.Error("collector registry not set correctly")
	}
}

func TestCollector_NilArguments(t *testing.T) {
	collector := NewCollector(nil, nil)
	collector.ObserveInvocation("search-npm", "list", "success", time.Millisecond)

	got := testutil.ToFloat64(collector.commandMetrics.invocationsTotal.WithLabelValues("search-npm", "list", "success"))
	if got != 1 {
		t.Errorf("invocations = %v, want 1", got)
	}
}

func TestCollector_ObserveInvocation(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.ObserveInvocation("github-stars", "list", "success", 200*time.Millisecond)
	collector.ObserveInvocation("github-stars", "list", "success", 300*time.Millisecond)
	collector.ObserveInvocation("github-stars", "config", "auth_failure", 10*time.Millisecond)

	if got := testutil.ToFloat64(collector.commandMetrics.invocationsTotal.WithLabelValues("github-stars", "list", "success")); got != 2 {
		t.Errorf("list success = %v, want 2", got)
	}
	if got := testutil.ToFloat64(collector.commandMetrics.invocationsTotal.WithLabelValues("github-stars", "config", "auth_failure")); got != 1 {
		t.Errorf("config auth_failure = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(collector.commandMetrics.duration); n != 2 {
		t.Errorf("duration series = %d, want 2", n)
	}
}

func TestCollector_ObserveUpstream(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		err       error
		wantLabel string
		wantError string
	}{
		{name: "ok", status: 200, wantLabel: "200"},
		{name: "unauthorized", status: 401, wantLabel: "401", wantError: "auth"},
		{name: "forbidden", status: 403, wantLabel: "403", wantError: "auth"},
		{name: "not found", status: 404, wantLabel: "404", wantError: "not_found"},
		{name: "server error", status: 502, wantLabel: "502", wantError: "status"},
		{name: "deadline", err: context.DeadlineExceeded, wantLabel: "none", wantError: "timeout"},
		{name: "connection refused", err: errors.New("dial tcp: connection refused"), wantLabel: "none", wantError: "transport"},
		{name: "typed timeout", err: &upstream.TimeoutError{Service: "npms", Timeout: time.Second}, wantLabel: "none", wantError: "timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collector := NewCollector(testConfig(), prometheus.NewRegistry())
			collector.ObserveUpstream("npms", tt.status, 50*time.Millisecond, tt.err)

			if got := testutil.ToFloat64(collector.upstreamMetrics.requestsTotal.WithLabelValues("npms", tt.wantLabel)); got != 1 {
				t.Errorf("requests{status=%q} = %v, want 1", tt.wantLabel, got)
			}

			errSeries := testutil.CollectAndCount(collector.upstreamMetrics.errorsTotal)
			if tt.wantError == "" {
				if errSeries != 0 {
					t.Errorf("unexpected error series: %d", errSeries)
				}
				return
			}
			if got := testutil.ToFloat64(collector.upstreamMetrics.errorsTotal.WithLabelValues("npms", tt.wantError)); got != 1 {
				t.Errorf("errors{error_type=%q} = %v, want 1", tt.wantError, got)
			}
		})
	}
}

func TestCollector_JournalEntryDropped(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())
	collector.JournalEntryDropped()
	collector.JournalEntryDropped()

	if got := testutil.ToFloat64(collector.journalMetrics.dropped); got != 2 {
		t.Errorf("dropped = %v, want 2", got)
	}
}

func TestCollector_Disabled(t *testing.T) {
	disabled := false
	cfg := testConfig()
	cfg.Enabled = &disabled
	collector := NewCollector(cfg, prometheus.NewRegistry())

	collector.ObserveInvocation("hn-front-page", "list", "success", time.Millisecond)
	collector.ObserveUpstream("hnrss", 200, time.Millisecond, nil)
	collector.JournalEntryDropped()

	if n := testutil.CollectAndCount(collector.commandMetrics.invocationsTotal); n != 0 {
		t.Errorf("invocation series = %d, want 0", n)
	}
	if n := testutil.CollectAndCount(collector.upstreamMetrics.requestsTotal); n != 0 {
		t.Errorf("upstream series = %d, want 0", n)
	}
	if got := testutil.ToFloat64(collector.journalMetrics.dropped); got != 0 {
		t.Errorf("dropped = %v, want 0", got)
	}
}

func TestCollector_Handler(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())
	collector.ObserveInvocation("unsplash-search", "detail", "success", 20*time.Millisecond)

	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	want := `test_command_invocations_total{command="unsplash-search",mode="detail",outcome="success"} 1`
	if !strings.Contains(rec.Body.String(), want) {
		t.Errorf("scrape output missing %q:\n%s", want, rec.Body.String())
	}
}

func TestCollector_CollectAndCompare(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())
	collector.ObserveUpstream("vercel", 200, time.Millisecond, nil)
	collector.ObserveUpstream("vercel", 401, time.Millisecond, nil)

	expected := `
# HELP test_upstream_requests_total Total number of upstream requests by response status
# TYPE test_upstream_requests_total counter
test_upstream_requests_total{service="vercel",status="200"} 1
test_upstream_requests_total{service="vercel",status="401"} 1
`
	if err := testutil.CollectAndCompare(collector.upstreamMetrics.requestsTotal, strings.NewReader(expected)); err != nil {
		t.Error(err)
	}
}

func BenchmarkCollector_ObserveInvocation(b *testing.B) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		collector.ObserveInvocation("search-npm", "list", "success", time.Millisecond)
	}
}

func BenchmarkCollector_ObserveUpstream_Parallel(b *testing.B) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())
	services := []string{"npms", "github", "vercel"}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			collector.ObserveUpstream(services[i%len(services)], 200, time.Millisecond, nil)
			i++
		}
	})
}
