package config

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{
			name:      "bad listen address",
			mutate:    func(c *Config) { c.Server.ListenAddress = "8080" },
			wantField: "server.listen_address",
		},
		{
			name:      "relative route prefix",
			mutate:    func(c *Config) { c.Server.RoutePrefix = "api" },
			wantField: "server.route_prefix",
		},
		{
			name:      "trailing slash route prefix",
			mutate:    func(c *Config) { c.Server.RoutePrefix = "/api/" },
			wantField: "server.route_prefix",
		},
		{
			name: "unknown upstream",
			mutate: func(c *Config) {
				c.Upstreams["gitlab"] = UpstreamConfig{BaseURL: "https://gitlab.com"}
			},
			wantField: "upstreams.gitlab",
		},
		{
			name: "relative upstream url",
			mutate: func(c *Config) {
				up := c.Upstreams["npms"]
				up.BaseURL = "/v2"
				c.Upstreams["npms"] = up
			},
			wantField: "upstreams.npms.base_url",
		},
		{
			name:      "team with slash",
			mutate:    func(c *Config) { c.Commands.Honeycomb.Team = "a/b" },
			wantField: "commands.honeycomb.team",
		},
		{
			name:      "unknown journal backend",
			mutate:    func(c *Config) { c.Journal.Backend = "s3" },
			wantField: "journal.backend",
		},
		{
			name: "unknown sqlite driver",
			mutate: func(c *Config) {
				c.Journal.Backend = "sqlite"
				c.Journal.SQLite.Driver = "pgx"
			},
			wantField: "journal.sqlite.driver",
		},
		{
			name:      "bad cron",
			mutate:    func(c *Config) { c.Journal.Retention.Schedule = "every day" },
			wantField: "journal.retention.schedule",
		},
		{
			name:      "bad log format",
			mutate:    func(c *Config) { c.Telemetry.Logging.Format = "xml" },
			wantField: "telemetry.logging.format",
		},
		{
			name:      "unsorted buckets",
			mutate:    func(c *Config) { c.Telemetry.Metrics.CommandDurationBuckets = []float64{1, 0.5} },
			wantField: "telemetry.metrics.command_duration_buckets",
		},
		{
			name:      "ratio out of range",
			mutate:    func(c *Config) { c.Telemetry.Tracing.SampleRatio = 1.5 },
			wantField: "telemetry.tracing.sample_ratio",
		},
		{
			name:      "bad sampler",
			mutate:    func(c *Config) { c.Telemetry.Tracing.Sampler = "sometimes" },
			wantField: "telemetry.tracing.sampler",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := Validate(cfg)
			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}

			found := false
			for _, fe := range verr.Errors {
				if fe.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error on %q, got %v", tt.wantField, verr)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	single := ValidationError{Errors: []FieldError{{Field: "a", Message: "bad"}}}
	if got := single.Error(); got != "configuration validation failed: a: bad" {
		t.Errorf("single = %q", got)
	}

	multi := ValidationError{Errors: []FieldError{{Field: "a", Message: "bad"}, {Field: "b", Message: "worse"}}}
	got := multi.Error()
	if !strings.Contains(got, "2 errors") || !strings.Contains(got, "  - b: worse") {
		t.Errorf("multi = %q", got)
	}

	if got := (ValidationError{}).Error(); got != "configuration validation failed" {
		t.Errorf("empty = %q", got)
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Server.ListenAddress = ""
	cfg.Journal.Backend = "nope"
	cfg.Telemetry.Metrics.Path = "metrics"

	var verr ValidationError
	if !errors.As(Validate(cfg), &verr) {
		t.Fatal("expected ValidationError")
	}
	if len(verr.Errors) != 3 {
		t.Errorf("got %d errors, want 3: %v", len(verr.Errors), verr)
	}
}
