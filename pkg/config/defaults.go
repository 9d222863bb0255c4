package config

import "time"

// Default values for configuration fields.
const (
	// Server defaults
	DefaultListenAddress   = "127.0.0.1:8080"
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 15 * time.Second
	DefaultMaxHeaderBytes  = 1048576 // 1MB
	DefaultRoutePrefix     = "/api/slapdash"

	// Upstream defaults
	DefaultUpstreamTimeout             = 10 * time.Second
	DefaultUpstreamMaxIdleConns        = 100
	DefaultUpstreamMaxIdleConnsPerHost = 10
	DefaultUpstreamIdleConnTimeout     = 90 * time.Second

	// Command defaults
	DefaultHoneycombTeam = "slapdash"
	DefaultHNFeedURL     = "/frontpage"

	// Journal defaults
	DefaultJournalBackend       = "memory"
	DefaultJournalBuffer        = 1000
	DefaultJournalWriteTimeout  = 5 * time.Second
	DefaultJournalSQLitePath    = "data/journal.db"
	DefaultJournalSQLiteDriver  = "sqlite"
	DefaultJournalSQLiteConns   = 4
	DefaultJournalBusyTimeout   = 5 * time.Second
	DefaultJournalRetentionDays = 30
	DefaultJournalSchedule      = "0 3 * * *"

	// Telemetry defaults
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "json"
	DefaultMetricsPath        = "/metrics"
	DefaultMetricsNamespace   = "callisto"
	DefaultTracingSampler     = "ratio"
	DefaultTracingSampleRatio = 0.1
	DefaultTracingEndpoint    = "localhost:4317"
	DefaultTracingServiceName = "callisto"
	DefaultOTLPTimeout        = 10 * time.Second
	DefaultLivenessPath       = "/health"
	DefaultReadinessPath      = "/ready"
	DefaultHealthCheckTimeout = 2 * time.Second
)

// DefaultBaseURLs are the public API endpoints of each upstream service.
var DefaultBaseURLs = map[string]string{
	"github":     "https://api.github.com/",
	"hnrss":      "https://hnrss.org",
	"honeycomb":  "https://api.honeycomb.io",
	"iconfinder": "https://api.iconfinder.com/v4",
	"npms":       "https://api.npms.io/v2",
	"unsplash":   "https://api.unsplash.com",
	"vercel":     "https://api.vercel.com",
}

var (
	defaultCommandDurationBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
	defaultUpstreamLatencyBuckets = []float64{0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
)

// ApplyDefaults fills zero-valued fields with defaults. Every known upstream
// service gets an entry so callers can index Upstreams without checking.
func ApplyDefaults(cfg *Config) {
	// Server defaults
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.MaxHeaderBytes == 0 {
		cfg.Server.MaxHeaderBytes = DefaultMaxHeaderBytes
	}
	if cfg.Server.RoutePrefix == "" {
		cfg.Server.RoutePrefix = DefaultRoutePrefix
	}

	// Upstream defaults, applied to each service
	if cfg.Upstreams == nil {
		cfg.Upstreams = make(map[string]UpstreamConfig)
	}
	for name := range DefaultBaseURLs {
		if _, ok := cfg.Upstreams[name]; !ok {
			cfg.Upstreams[name] = UpstreamConfig{}
		}
	}
	for name, up := range cfg.Upstreams {
		if up.BaseURL == "" {
			up.BaseURL = DefaultBaseURLs[name]
		}
		if up.Timeout == 0 {
			up.Timeout = DefaultUpstreamTimeout
		}
		if up.MaxIdleConns == 0 {
			up.MaxIdleConns = DefaultUpstreamMaxIdleConns
		}
		if up.MaxIdleConnsPerHost == 0 {
			up.MaxIdleConnsPerHost = DefaultUpstreamMaxIdleConnsPerHost
		}
		if up.IdleConnTimeout == 0 {
			up.IdleConnTimeout = DefaultUpstreamIdleConnTimeout
		}
		cfg.Upstreams[name] = up
	}

	// Command defaults
	if cfg.Commands.Honeycomb.Team == "" {
		cfg.Commands.Honeycomb.Team = DefaultHoneycombTeam
	}
	if cfg.Commands.HackerNews.FeedURL == "" {
		cfg.Commands.HackerNews.FeedURL = DefaultHNFeedURL
	}

	// Journal defaults
	if cfg.Journal.Backend == "" {
		cfg.Journal.Backend = DefaultJournalBackend
	}
	if cfg.Journal.Buffer == 0 {
		cfg.Journal.Buffer = DefaultJournalBuffer
	}
	if cfg.Journal.WriteTimeout == 0 {
		cfg.Journal.WriteTimeout = DefaultJournalWriteTimeout
	}
	if cfg.Journal.SQLite.Path == "" {
		cfg.Journal.SQLite.Path = DefaultJournalSQLitePath
	}
	if cfg.Journal.SQLite.Driver == "" {
		cfg.Journal.SQLite.Driver = DefaultJournalSQLiteDriver
	}
	if cfg.Journal.SQLite.MaxOpenConns == 0 {
		cfg.Journal.SQLite.MaxOpenConns = DefaultJournalSQLiteConns
	}
	if cfg.Journal.SQLite.BusyTimeout == 0 {
		cfg.Journal.SQLite.BusyTimeout = DefaultJournalBusyTimeout
	}
	if cfg.Journal.Retention.Days == 0 {
		cfg.Journal.Retention.Days = DefaultJournalRetentionDays
	}
	if cfg.Journal.Retention.Schedule == "" {
		cfg.Journal.Retention.Schedule = DefaultJournalSchedule
	}

	// Logging defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}

	// Metrics defaults
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if len(cfg.Telemetry.Metrics.CommandDurationBuckets) == 0 {
		cfg.Telemetry.Metrics.CommandDurationBuckets = append([]float64(nil), defaultCommandDurationBuckets...)
	}
	if len(cfg.Telemetry.Metrics.UpstreamLatencyBuckets) == 0 {
		cfg.Telemetry.Metrics.UpstreamLatencyBuckets = append([]float64(nil), defaultUpstreamLatencyBuckets...)
	}

	// Tracing defaults
	if cfg.Telemetry.Tracing.Sampler == "" {
		cfg.Telemetry.Tracing.Sampler = DefaultTracingSampler
	}
	if cfg.Telemetry.Tracing.SampleRatio == 0 {
		cfg.Telemetry.Tracing.SampleRatio = DefaultTracingSampleRatio
	}
	if cfg.Telemetry.Tracing.Endpoint == "" {
		cfg.Telemetry.Tracing.Endpoint = DefaultTracingEndpoint
	}
	if cfg.Telemetry.Tracing.ServiceName == "" {
		cfg.Telemetry.Tracing.ServiceName = DefaultTracingServiceName
	}
	if cfg.Telemetry.Tracing.OTLP.Timeout == 0 {
		cfg.Telemetry.Tracing.OTLP.Timeout = DefaultOTLPTimeout
	}

	// Health defaults
	if cfg.Telemetry.Health.LivenessPath == "" {
		cfg.Telemetry.Health.LivenessPath = DefaultLivenessPath
	}
	if cfg.Telemetry.Health.ReadinessPath == "" {
		cfg.Telemetry.Health.ReadinessPath = DefaultReadinessPath
	}
	if cfg.Telemetry.Health.CheckTimeout == 0 {
		cfg.Telemetry.Health.CheckTimeout = DefaultHealthCheckTimeout
	}
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
