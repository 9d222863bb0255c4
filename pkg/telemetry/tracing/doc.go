// Package tracing configures OpenTelemetry for callisto.
//
// Each command invocation gets a server span named command.<name> and each
// upstream round trip a client span named upstream.<service>. Incoming W3C
// trace context is honoured through HTTPMiddleware and propagated to
// upstream requests.
//
// # Usage
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing, version)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
// When tracing is disabled New returns a noop tracer and leaves the global
// provider alone, so instrumented code pays almost nothing.
//
// # Configuration
//
//	telemetry:
//	  tracing:
//	    enabled: true
//	    endpoint: "otel-collector:4317"
//	    sampler: ratio
//	    sample_ratio: 0.1
//	    otlp:
//	      insecure: true
package tracing
