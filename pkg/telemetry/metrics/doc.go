// Package metrics provides Prometheus metrics for callisto.
//
// # Metrics
//
//   - command_invocations_total{command,mode,outcome}: one per invocation
//   - command_duration_seconds{command,mode}: invocation latency
//   - upstream_requests_total{service,status}: one per upstream round trip
//   - upstream_latency_seconds{service}: round trip latency
//   - upstream_errors_total{service,error_type}: failed round trips
//   - journal_entries_dropped_total: journal entries lost to a full buffer
//
// Names carry the configured namespace and subsystem prefix, for example
// callisto_command_invocations_total.
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//
//	handler := command.NewHandler(cmd, command.WithObserver(collector))
//	client := upstream.New(upstreamCfg, upstream.WithObserver(collector))
//
//	router.Handle("/metrics", collector.Handler())
//
// The Collector satisfies command.Observer and upstream.Observer, so wiring
// it into the handler and the clients is all that is needed.
package metrics
