package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable override.
const EnvPrefix = "CALLISTO_"

// Legacy environment variables read by earlier deployments.
const (
	EnvIconfinderAPIKey  = "ICONFINDER_API_KEY"
	EnvUnsplashAccessKey = "UNSPLASH_ACCESS_KEY"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values and validates the result. Environment variables
// are not consulted; use LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Parse decodes YAML configuration and applies defaults without validating.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	ApplyDefaults(&cfg)
	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration and applies environment
// variable overrides. An empty path starts from the defaults, which is how
// the serverless entry point runs.
//
// The loading sequence is:
// 1. Load YAML from file (or defaults)
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	var cfg *Config
	if path == "" {
		cfg = Default()
	} else {
		var err error
		if cfg, err = LoadConfig(path); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

func envString(name string, dst *string) {
	if val := os.Getenv(EnvPrefix + name); val != "" {
		*dst = val
	}
}

func envDuration(name string, dst *time.Duration) {
	if val := os.Getenv(EnvPrefix + name); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			*dst = d
		}
	}
}

func envInt(name string, dst *int) {
	if val := os.Getenv(EnvPrefix + name); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			*dst = i
		}
	}
}

func envBool(name string, dst *bool) {
	if val := os.Getenv(EnvPrefix + name); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			*dst = b
		}
	}
}

func envBoolPtr(name string, dst **bool) {
	if val := os.Getenv(EnvPrefix + name); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			*dst = &b
		}
	}
}

// applyEnvOverrides applies CALLISTO_SECTION_FIELD variables and the legacy
// credential variables.
func applyEnvOverrides(cfg *Config) {
	// Server overrides
	envString("SERVER_LISTEN_ADDRESS", &cfg.Server.ListenAddress)
	envDuration("SERVER_READ_TIMEOUT", &cfg.Server.ReadTimeout)
	envDuration("SERVER_WRITE_TIMEOUT", &cfg.Server.WriteTimeout)
	envDuration("SERVER_IDLE_TIMEOUT", &cfg.Server.IdleTimeout)
	envDuration("SERVER_SHUTDOWN_TIMEOUT", &cfg.Server.ShutdownTimeout)
	envInt("SERVER_MAX_HEADER_BYTES", &cfg.Server.MaxHeaderBytes)
	envString("SERVER_ROUTE_PREFIX", &cfg.Server.RoutePrefix)

	for name := range cfg.Upstreams {
		applyUpstreamEnvOverrides(cfg, name)
	}

	// Command overrides. Legacy names first so the prefixed form wins.
	if val := os.Getenv(EnvIconfinderAPIKey); val != "" {
		cfg.Commands.Iconfinder.APIKey = val
	}
	if val := os.Getenv(EnvUnsplashAccessKey); val != "" {
		cfg.Commands.Unsplash.AccessKey = val
	}
	envString("COMMANDS_ICONFINDER_API_KEY", &cfg.Commands.Iconfinder.APIKey)
	envString("COMMANDS_UNSPLASH_ACCESS_KEY", &cfg.Commands.Unsplash.AccessKey)
	envString("COMMANDS_HONEYCOMB_TEAM", &cfg.Commands.Honeycomb.Team)
	envString("COMMANDS_HN_FEED_URL", &cfg.Commands.HackerNews.FeedURL)
	if val := os.Getenv(EnvPrefix + "COMMANDS_DISABLED"); val != "" {
		if cfg.Commands.Enabled == nil {
			cfg.Commands.Enabled = make(map[string]bool)
		}
		for _, name := range strings.Split(val, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cfg.Commands.Enabled[name] = false
			}
		}
	}

	// Journal overrides
	envBool("JOURNAL_ENABLED", &cfg.Journal.Enabled)
	envString("JOURNAL_BACKEND", &cfg.Journal.Backend)
	envString("JOURNAL_SQLITE_PATH", &cfg.Journal.SQLite.Path)
	envString("JOURNAL_SQLITE_DRIVER", &cfg.Journal.SQLite.Driver)
	envInt("JOURNAL_RETENTION_DAYS", &cfg.Journal.Retention.Days)
	envString("JOURNAL_RETENTION_SCHEDULE", &cfg.Journal.Retention.Schedule)

	// Telemetry overrides
	envString("TELEMETRY_LOGGING_LEVEL", &cfg.Telemetry.Logging.Level)
	envString("TELEMETRY_LOGGING_FORMAT", &cfg.Telemetry.Logging.Format)
	envBoolPtr("TELEMETRY_LOGGING_REDACT", &cfg.Telemetry.Logging.Redact)
	envBoolPtr("TELEMETRY_METRICS_ENABLED", &cfg.Telemetry.Metrics.Enabled)
	envString("TELEMETRY_METRICS_PATH", &cfg.Telemetry.Metrics.Path)
	envBool("TELEMETRY_TRACING_ENABLED", &cfg.Telemetry.Tracing.Enabled)
	envString("TELEMETRY_TRACING_ENDPOINT", &cfg.Telemetry.Tracing.Endpoint)
	if val := os.Getenv(EnvPrefix + "TELEMETRY_TRACING_SAMPLE_RATIO"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Telemetry.Tracing.SampleRatio = f
		}
	}

	envBool("WATCH", &cfg.Watch)
}

// applyUpstreamEnvOverrides applies CALLISTO_UPSTREAMS_<NAME>_<FIELD>
// overrides for one service.
func applyUpstreamEnvOverrides(cfg *Config, name string) {
	up := cfg.Upstreams[name]
	prefix := "UPSTREAMS_" + strings.ToUpper(name) + "_"

	envString(prefix+"BASE_URL", &up.BaseURL)
	envDuration(prefix+"TIMEOUT", &up.Timeout)
	envBool(prefix+"PROPAGATE_TRACE", &up.PropagateTrace)

	cfg.Upstreams[name] = up
}
