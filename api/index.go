// Package handler is the serverless entry point. The platform routes every
// request under /api to Handler, which serves the same router as
// "callisto run" built from defaults and CALLISTO_* environment variables.
package handler

import (
	"log/slog"
	"net/http"
	"os"
	"sync"

	"mercator-hq/callisto/pkg/command"
	"mercator-hq/callisto/pkg/commands"
	"mercator-hq/callisto/pkg/config"
	"mercator-hq/callisto/pkg/server"
	"mercator-hq/callisto/pkg/telemetry/logging"
	"mercator-hq/callisto/pkg/telemetry/metrics"
	"mercator-hq/callisto/pkg/upstream"
)

var (
	once   sync.Once
	router http.Handler
)

// Handler serves one request.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		router = build()
	})
	router.ServeHTTP(w, r)
}

func build() http.Handler {
	cfg, err := config.LoadConfigWithEnvOverrides("")
	if err != nil {
		slog.Error("invalid configuration, serving defaults", "error", err)
		cfg = config.Default()
	}

	logger, err := logging.New(logging.Config{
		Level:  cfg.Telemetry.Logging.Level,
		Format: cfg.Telemetry.Logging.Format,
		Redact: cfg.Telemetry.Logging.RedactEnabled(),
		Writer: os.Stdout,
	})
	if err != nil {
		logger = slog.Default()
	}

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
	registry, err := commands.NewRegistry(cfg, upstream.WithObserver(collector))
	if err != nil {
		logger.Error("failed to build command registry", "error", err)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			command.WriteResponse(w, command.Generic())
		})
	}

	return server.NewRouter(cfg, server.Deps{
		Registry: registry,
		Logger:   logger,
		Metrics:  collector,
	})
}
