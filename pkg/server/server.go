package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path"
	"sync"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"mercator-hq/callisto/pkg/api/handlers"
	"mercator-hq/callisto/pkg/api/middleware"
	"mercator-hq/callisto/pkg/command"
	"mercator-hq/callisto/pkg/config"
	"mercator-hq/callisto/pkg/telemetry/health"
	"mercator-hq/callisto/pkg/telemetry/metrics"
	"mercator-hq/callisto/pkg/telemetry/tracing"
)

// Deps are the components the router serves. Registry is required; the
// rest are optional.
type Deps struct {
	Registry *command.Registry
	Logger   *slog.Logger

	// Metrics is nil when metrics are disabled.
	Metrics *metrics.Collector

	// Health defaults to a checker with no readiness checks.
	Health *health.Checker

	// Recorder receives every invocation when the journal is enabled.
	Recorder command.Recorder

	// Enabled reports whether a command is switched on. It is consulted on
	// every request so configuration reloads apply live. Defaults to the
	// static configuration.
	Enabled func(name string) bool

	Version health.VersionInfo
}

// Server is the HTTP server for the command endpoints.
type Server struct {
	config       *config.Config
	deps         Deps
	httpServer   *http.Server
	shutdownChan chan struct{}
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// New creates a server. It does not listen until Start.
func New(cfg *config.Config, deps Deps) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if deps.Registry == nil {
		return nil, errors.New("command registry cannot be nil")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Health == nil {
		deps.Health = health.New(&cfg.Telemetry.Health)
	}
	if deps.Enabled == nil {
		deps.Enabled = cfg.Commands.IsEnabled
	}

	return &Server{
		config:       cfg,
		deps:         deps,
		shutdownChan: make(chan struct{}),
	}, nil
}

// Handler returns the configured router.
func (s *Server) Handler() http.Handler {
	return NewRouter(s.config, s.deps)
}

// NewRouter builds the chi router serving every command under the route
// prefix plus the operational endpoints.
func NewRouter(cfg *config.Config, deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	enabled := deps.Enabled
	if enabled == nil {
		enabled = cfg.Commands.IsEnabled
	}
	checker := deps.Health
	if checker == nil {
		checker = health.New(&cfg.Telemetry.Health)
	}

	r := chi.NewRouter()
	r.Use(middleware.RecoveryMiddleware)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggingMiddleware(logger))
	r.Use(tracing.HTTPMiddleware)

	opts := []command.HandlerOption{
		command.WithLogger(logger),
		command.WithEnabled(enabled),
	}
	if deps.Metrics != nil {
		opts = append(opts, command.WithObserver(deps.Metrics))
	}
	if deps.Recorder != nil {
		opts = append(opts, command.WithRecorder(deps.Recorder))
	}

	prefix := path.Join("/", cfg.Server.RoutePrefix)
	for _, cmd := range deps.Registry.All() {
		r.Handle(path.Join(prefix, cmd.Spec().Name), command.NewHandler(cmd, opts...))
	}

	r.Method(http.MethodGet, "/commands", handlers.NewCommandsHandler(deps.Registry, prefix, enabled))
	r.Get(orDefault(cfg.Telemetry.Health.LivenessPath, config.DefaultLivenessPath), checker.LivenessHandler())
	r.Get(orDefault(cfg.Telemetry.Health.ReadinessPath, config.DefaultReadinessPath), checker.ReadinessHandler())
	r.Get("/version", health.VersionHandler(deps.Version.Version, deps.Version.Commit, deps.Version.BuildTime))

	if deps.Metrics != nil && cfg.Telemetry.Metrics.IsEnabled() {
		r.Method(http.MethodGet, orDefault(cfg.Telemetry.Metrics.Path, config.DefaultMetricsPath), deps.Metrics.Handler())
	}

	return r
}

// Start listens and blocks until ctx is cancelled, a shutdown signal
// arrives, Stop is called, or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.httpServer = &http.Server{
		Addr:           s.config.Server.ListenAddress,
		Handler:        s.Handler(),
		ReadTimeout:    s.config.Server.ReadTimeout,
		WriteTimeout:   s.config.Server.WriteTimeout,
		IdleTimeout:    s.config.Server.IdleTimeout,
		MaxHeaderBytes: s.config.Server.MaxHeaderBytes,
	}
	s.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		s.deps.Logger.Info("starting server",
			"address", s.config.Server.ListenAddress,
			"route_prefix", s.config.Server.RoutePrefix,
			"commands", s.deps.Registry.Names(),
		)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-ctx.Done():
		s.deps.Logger.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case sig := <-sigChan:
		s.deps.Logger.Info("received shutdown signal", "signal", sig.String())
		return s.Shutdown(context.Background())
	case err := <-errChan:
		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()
		return err
	case <-s.shutdownChan:
		s.deps.Logger.Info("shutdown requested")
		return s.Shutdown(context.Background())
	}
}

// Stop asks a running Start to shut down.
func (s *Server) Stop() {
	select {
	case <-s.shutdownChan:
	default:
		close(s.shutdownChan)
	}
}

// Shutdown gracefully stops the server within the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		running := s.isRunning
		httpServer := s.httpServer
		s.mu.Unlock()
		if !running {
			return
		}

		s.deps.Logger.Info("initiating graceful shutdown", "timeout", s.config.Server.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
		defer cancel()

		if httpServer != nil {
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				s.deps.Logger.Error("error during server shutdown", "error", err)
				shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			}
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		s.deps.Logger.Info("server stopped")
	})

	return shutdownErr
}

// IsRunning reports whether the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
