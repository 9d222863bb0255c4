// Package telemetry groups the observability packages used by callisto.
//
// # Components
//
//   - logging: slog handlers with credential redaction and request-scoped fields
//   - metrics: Prometheus collectors for invocations, upstream calls and the journal
//   - tracing: OpenTelemetry spans exported over OTLP gRPC, noop when disabled
//   - health: liveness, readiness and version endpoints
//
// # Usage
//
//	cfg := config.GetConfig()
//
//	logger, err := logging.New(logging.Config{
//		Level:  cfg.Telemetry.Logging.Level,
//		Format: cfg.Telemetry.Logging.Format,
//		Redact: cfg.Telemetry.Logging.RedactEnabled(),
//	})
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	registry, err := commands.NewRegistry(cfg, upstream.WithObserver(collector))
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing, version)
//	defer tracer.Shutdown(context.Background())
//
// # Credentials
//
// Credential headers and keys never reach the logs: attributes named like
// token, api_key or authorization are replaced, and inline Bearer and
// Client-ID values are scrubbed from free text. Metrics and spans carry
// only command, service, mode and outcome labels.
package telemetry
