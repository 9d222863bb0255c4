package config

import "time"

// Config is the root configuration structure for callisto.
type Config struct {
	// Server contains HTTP server configuration.
	Server ServerConfig `yaml:"server"`

	// Upstreams contains per-service HTTP client settings. Keys are the
	// service names used in metrics: github, hnrss, honeycomb, iconfinder,
	// npms, unsplash, vercel.
	Upstreams map[string]UpstreamConfig `yaml:"upstreams"`

	// Commands contains command enablement and server-held credentials.
	Commands CommandsConfig `yaml:"commands"`

	// Journal contains invocation journal configuration.
	Journal JournalConfig `yaml:"journal"`

	// Telemetry contains logging, metrics, tracing and health settings.
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Watch enables hot reload of the configuration file.
	// Default: false
	Watch bool `yaml:"watch"`
}

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port to listen on.
	// Default: "127.0.0.1:8080"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request.
	// Default: 15s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response. It must exceed the slowest upstream timeout.
	// Default: 30s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the keep-alive idle timeout.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	// Default: 15s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes limits request header size.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`

	// RoutePrefix is the path under which commands are mounted.
	// Default: "/api/slapdash"
	RoutePrefix string `yaml:"route_prefix"`
}

// UpstreamConfig contains HTTP client settings for one upstream service.
type UpstreamConfig struct {
	// BaseURL overrides the service's public API endpoint.
	BaseURL string `yaml:"base_url"`

	// Timeout bounds a single upstream request. 0 leaves it to the transport.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`

	// Default: 100
	MaxIdleConns int `yaml:"max_idle_conns"`

	// Default: 10
	MaxIdleConnsPerHost int `yaml:"max_idle_conns_per_host"`

	// Default: 90s
	IdleConnTimeout time.Duration `yaml:"idle_conn_timeout"`

	// PropagateTrace forwards the W3C traceparent header to this upstream.
	// Only enable it for services that share the trace backend.
	// Default: false
	PropagateTrace bool `yaml:"propagate_trace"`
}

// CommandsConfig contains command enablement and server-held credentials.
type CommandsConfig struct {
	// Enabled switches individual commands on or off by name.
	// Commands missing from the map are enabled.
	Enabled map[string]bool `yaml:"enabled"`

	Iconfinder IconfinderConfig `yaml:"iconfinder"`
	Unsplash   UnsplashConfig   `yaml:"unsplash"`
	Honeycomb  HoneycombConfig  `yaml:"honeycomb"`
	HackerNews HackerNewsConfig `yaml:"hn"`
}

// IsEnabled reports whether the named command is enabled.
func (c CommandsConfig) IsEnabled(name string) bool {
	enabled, ok := c.Enabled[name]
	return !ok || enabled
}

// IconfinderConfig holds the server-side Iconfinder credential.
type IconfinderConfig struct {
	// APIKey is sent as a bearer token. Also read from ICONFINDER_API_KEY.
	APIKey string `yaml:"api_key"`
}

// UnsplashConfig holds the server-side Unsplash credential.
type UnsplashConfig struct {
	// AccessKey is sent as a Client-ID. Also read from UNSPLASH_ACCESS_KEY.
	AccessKey string `yaml:"access_key"`
}

// HoneycombConfig contains Honeycomb board link settings.
type HoneycombConfig struct {
	// Team is the team slug used in board URLs.
	// Default: "slapdash"
	Team string `yaml:"team"`
}

// HackerNewsConfig contains front page feed settings.
type HackerNewsConfig struct {
	// FeedURL is the RSS feed path or absolute URL.
	// Default: "/frontpage"
	FeedURL string `yaml:"feed_url"`
}

// JournalConfig contains invocation journal configuration.
type JournalConfig struct {
	// Enabled controls whether invocations are recorded.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Backend selects the storage backend.
	// Options: "memory", "sqlite"
	// Default: "memory"
	Backend string `yaml:"backend"`

	// SQLite contains SQLite-specific configuration.
	SQLite SQLiteConfig `yaml:"sqlite"`

	// Buffer is the size of the async write channel.
	// Default: 1000
	Buffer int `yaml:"buffer"`

	// WriteTimeout bounds a single storage write.
	// Default: 5s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// Retention contains pruning configuration.
	Retention RetentionConfig `yaml:"retention"`
}

// SQLiteConfig contains SQLite-specific configuration.
type SQLiteConfig struct {
	// Path is the database file path.
	// Default: "data/journal.db"
	Path string `yaml:"path"`

	// Driver selects the database/sql driver.
	// Options: "sqlite" (pure Go), "sqlite3" (cgo)
	// Default: "sqlite"
	Driver string `yaml:"driver"`

	// Default: 4
	MaxOpenConns int `yaml:"max_open_conns"`

	// BusyTimeout is how long to wait on a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// RetentionConfig contains journal pruning configuration.
type RetentionConfig struct {
	// Days is the number of days to keep entries. 0 keeps them forever.
	// Default: 30
	Days int `yaml:"days"`

	// MaxEntries caps the number of stored entries. 0 means unlimited.
	MaxEntries int64 `yaml:"max_entries"`

	// Schedule is the cron expression for pruning.
	// Default: "0 3 * * *"
	Schedule string `yaml:"schedule"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
	Health  HealthConfig  `yaml:"health"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text"
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	AddSource bool `yaml:"add_source"`

	// Redact scrubs credentials from log output.
	// Default: true
	Redact *bool `yaml:"redact"`
}

// RedactEnabled reports whether redaction is on.
func (c LoggingConfig) RedactEnabled() bool {
	return c.Redact == nil || *c.Redact
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected and exposed.
	// Default: true
	Enabled *bool `yaml:"enabled"`

	// Path is the HTTP path for the Prometheus endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "callisto"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	Subsystem string `yaml:"subsystem"`

	// CommandDurationBuckets defines histogram buckets for command duration (seconds).
	// Default: [0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10]
	CommandDurationBuckets []float64 `yaml:"command_duration_buckets"`

	// UpstreamLatencyBuckets defines histogram buckets for upstream latency (seconds).
	// Default: [0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5]
	UpstreamLatencyBuckets []float64 `yaml:"upstream_latency_buckets"`
}

// IsEnabled reports whether metrics are on.
func (c MetricsConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether traces are exported.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "ratio"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of traces to sample.
	// Default: 0.1
	SampleRatio float64 `yaml:"sample_ratio"`

	// Endpoint is the OTLP gRPC collector endpoint.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// ServiceName is the service name in traces.
	// Default: "callisto"
	ServiceName string `yaml:"service_name"`

	OTLP OTLPConfig `yaml:"otlp"`
}

// OTLPConfig contains OTLP exporter configuration.
type OTLPConfig struct {
	// Insecure disables TLS for the exporter connection.
	Insecure bool `yaml:"insecure"`

	// Timeout is the export timeout.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}

// HealthConfig contains health endpoint configuration.
type HealthConfig struct {
	// Default: "/health"
	LivenessPath string `yaml:"liveness_path"`

	// Default: "/ready"
	ReadinessPath string `yaml:"readiness_path"`

	// CheckTimeout bounds each readiness check.
	// Default: 2s
	CheckTimeout time.Duration `yaml:"check_timeout"`
}
