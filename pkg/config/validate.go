package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/robfig/cron/v3"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "server.listen_address").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
type ValidationError struct {
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// holding every failed rule, or nil.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateServer(&cfg.Server)...)
	errs = append(errs, validateUpstreams(cfg.Upstreams)...)
	errs = append(errs, validateCommands(&cfg.Commands)...)
	errs = append(errs, validateJournal(&cfg.Journal)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validateServer(cfg *ServerConfig) []FieldError {
	var errs []FieldError

	if cfg.ListenAddress == "" {
		errs = append(errs, FieldError{Field: "server.listen_address", Message: "must not be empty"})
	} else if _, _, err := net.SplitHostPort(cfg.ListenAddress); err != nil {
		errs = append(errs, FieldError{Field: "server.listen_address", Message: fmt.Sprintf("invalid address format: %v", err)})
	}
	if cfg.ReadTimeout < 0 {
		errs = append(errs, FieldError{Field: "server.read_timeout", Message: "must not be negative"})
	}
	if cfg.WriteTimeout < 0 {
		errs = append(errs, FieldError{Field: "server.write_timeout", Message: "must not be negative"})
	}
	if cfg.ShutdownTimeout < 0 {
		errs = append(errs, FieldError{Field: "server.shutdown_timeout", Message: "must not be negative"})
	}
	if cfg.MaxHeaderBytes < 0 {
		errs = append(errs, FieldError{Field: "server.max_header_bytes", Message: "must not be negative"})
	}
	if !strings.HasPrefix(cfg.RoutePrefix, "/") {
		errs = append(errs, FieldError{Field: "server.route_prefix", Message: "must start with /"})
	} else if len(cfg.RoutePrefix) > 1 && strings.HasSuffix(cfg.RoutePrefix, "/") {
		errs = append(errs, FieldError{Field: "server.route_prefix", Message: "must not end with /"})
	}

	return errs
}

func validateUpstreams(upstreams map[string]UpstreamConfig) []FieldError {
	var errs []FieldError

	for name, up := range upstreams {
		field := "upstreams." + name
		if _, known := DefaultBaseURLs[name]; !known {
			errs = append(errs, FieldError{Field: field, Message: "unknown upstream service"})
			continue
		}
		if u, err := url.Parse(up.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, FieldError{Field: field + ".base_url", Message: "must be an absolute URL"})
		}
		if up.Timeout < 0 {
			errs = append(errs, FieldError{Field: field + ".timeout", Message: "must not be negative"})
		}
		if up.MaxIdleConns < 0 || up.MaxIdleConnsPerHost < 0 {
			errs = append(errs, FieldError{Field: field, Message: "connection pool sizes must not be negative"})
		}
	}

	return errs
}

func validateCommands(cfg *CommandsConfig) []FieldError {
	var errs []FieldError

	if strings.ContainsAny(cfg.Honeycomb.Team, "/?# ") {
		errs = append(errs, FieldError{Field: "commands.honeycomb.team", Message: "must be a URL path segment"})
	}
	if cfg.HackerNews.FeedURL == "" {
		errs = append(errs, FieldError{Field: "commands.hn.feed_url", Message: "must not be empty"})
	}

	return errs
}

func validateJournal(cfg *JournalConfig) []FieldError {
	var errs []FieldError

	switch cfg.Backend {
	case "memory":
	case "sqlite":
		if cfg.SQLite.Path == "" {
			errs = append(errs, FieldError{Field: "journal.sqlite.path", Message: "must not be empty"})
		}
		if cfg.SQLite.Driver != "sqlite" && cfg.SQLite.Driver != "sqlite3" {
			errs = append(errs, FieldError{Field: "journal.sqlite.driver", Message: `must be "sqlite" or "sqlite3"`})
		}
	default:
		errs = append(errs, FieldError{Field: "journal.backend", Message: `must be "memory" or "sqlite"`})
	}

	if cfg.Buffer < 0 {
		errs = append(errs, FieldError{Field: "journal.buffer", Message: "must not be negative"})
	}
	if cfg.Retention.Days < 0 {
		errs = append(errs, FieldError{Field: "journal.retention.days", Message: "must not be negative"})
	}
	if cfg.Retention.MaxEntries < 0 {
		errs = append(errs, FieldError{Field: "journal.retention.max_entries", Message: "must not be negative"})
	}
	if _, err := cron.ParseStandard(cfg.Retention.Schedule); err != nil {
		errs = append(errs, FieldError{Field: "journal.retention.schedule", Message: fmt.Sprintf("invalid cron expression: %v", err)})
	}

	return errs
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch strings.ToLower(cfg.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, FieldError{Field: "telemetry.logging.level", Message: `must be one of "debug", "info", "warn", "error"`})
	}
	switch strings.ToLower(cfg.Logging.Format) {
	case "json", "text", "console":
	default:
		errs = append(errs, FieldError{Field: "telemetry.logging.format", Message: `must be "json" or "text"`})
	}

	if !strings.HasPrefix(cfg.Metrics.Path, "/") {
		errs = append(errs, FieldError{Field: "telemetry.metrics.path", Message: "must start with /"})
	}
	if !ascending(cfg.Metrics.CommandDurationBuckets) {
		errs = append(errs, FieldError{Field: "telemetry.metrics.command_duration_buckets", Message: "must be strictly increasing"})
	}
	if !ascending(cfg.Metrics.UpstreamLatencyBuckets) {
		errs = append(errs, FieldError{Field: "telemetry.metrics.upstream_latency_buckets", Message: "must be strictly increasing"})
	}

	switch cfg.Tracing.Sampler {
	case "always", "never", "ratio":
	default:
		errs = append(errs, FieldError{Field: "telemetry.tracing.sampler", Message: `must be "always", "never" or "ratio"`})
	}
	if cfg.Tracing.SampleRatio < 0 || cfg.Tracing.SampleRatio > 1 {
		errs = append(errs, FieldError{Field: "telemetry.tracing.sample_ratio", Message: "must be between 0 and 1"})
	}
	if cfg.Tracing.Enabled && cfg.Tracing.Endpoint == "" {
		errs = append(errs, FieldError{Field: "telemetry.tracing.endpoint", Message: "required when tracing is enabled"})
	}

	if !strings.HasPrefix(cfg.Health.LivenessPath, "/") {
		errs = append(errs, FieldError{Field: "telemetry.health.liveness_path", Message: "must start with /"})
	}
	if !strings.HasPrefix(cfg.Health.ReadinessPath, "/") {
		errs = append(errs, FieldError{Field: "telemetry.health.readiness_path", Message: "must start with /"})
	}

	return errs
}

func ascending(buckets []float64) bool {
	for i := 1; i < len(buckets); i++ {
		if buckets[i] <= buckets[i-1] {
			return false
		}
	}
	return true
}
