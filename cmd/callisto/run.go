package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/callisto/pkg/cli"
	"mercator-hq/callisto/pkg/command"
	"mercator-hq/callisto/pkg/commands"
	"mercator-hq/callisto/pkg/config"
	"mercator-hq/callisto/pkg/journal/recorder"
	"mercator-hq/callisto/pkg/journal/retention"
	"mercator-hq/callisto/pkg/journal/storage"
	"mercator-hq/callisto/pkg/server"
	"mercator-hq/callisto/pkg/telemetry/health"
	"mercator-hq/callisto/pkg/telemetry/logging"
	"mercator-hq/callisto/pkg/telemetry/metrics"
	"mercator-hq/callisto/pkg/telemetry/tracing"
	"mercator-hq/callisto/pkg/upstream"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the command server",
	Long: `Start the command server with the specified configuration.

Every enabled command is mounted under the route prefix (default
/api/slapdash). Health, readiness, version and metrics endpoints are
served alongside.

Examples:
  # Start with defaults and environment overrides
  callisto run

  # Start with a config file and reload it on change
  callisto run --config /etc/callisto/config.yaml

  # Override listen address
  callisto run --listen 0.0.0.0:8080

  # Validate config without starting server
  callisto run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}

	var level slog.LevelVar
	logger, err := logging.New(logging.Config{
		Level:     cfg.Telemetry.Logging.Level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
		Redact:    cfg.Telemetry.Logging.RedactEnabled(),
		LevelVar:  &level,
	})
	if err != nil {
		return cli.WrapConfigError("telemetry.logging", err)
	}
	slog.SetDefault(logger)

	if runFlags.dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration valid")
		return nil
	}

	ctx, stop := cli.SetupSignalHandler()
	defer stop()

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)

	tracer, err := tracing.New(&cfg.Telemetry.Tracing, Version)
	if err != nil {
		return cli.NewCommandError("run", fmt.Errorf("failed to initialize tracing: %w", err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("tracer shutdown failed", "error", err)
		}
	}()

	registry, err := commands.NewRegistry(cfg, upstream.WithObserver(collector))
	if err != nil {
		return cli.NewCommandError("run", err)
	}

	checker := health.New(&cfg.Telemetry.Health)

	var rec command.Recorder
	if cfg.Journal.Enabled {
		logger.Info("initializing invocation journal", "backend", cfg.Journal.Backend)

		store, err := storage.New(&cfg.Journal)
		if err != nil {
			return cli.NewCommandError("run", err)
		}
		defer store.Close()

		journalRecorder := recorder.New(store, &cfg.Journal, recorder.WithDropObserver(collector))
		defer journalRecorder.Close()
		rec = journalRecorder

		checker.Register("journal", store.Ping)

		if cfg.Journal.Retention.Schedule != "" {
			pruner := retention.NewPruner(store, cfg.Journal.Retention)
			if err := pruner.Start(ctx); err != nil {
				logger.Warn("failed to start journal retention", "error", err)
			} else {
				defer pruner.Stop()
				if next := pruner.NextPruning(); next != nil {
					logger.Debug("journal retention scheduled", "next_pruning", next)
				}
			}
		}
	}

	srv, err := server.New(cfg, server.Deps{
		Registry: registry,
		Logger:   logger,
		Metrics:  collector,
		Health:   checker,
		Recorder: rec,
		Enabled: func(name string) bool {
			return config.MustGetConfig().Commands.IsEnabled(name)
		},
		Version: health.VersionInfo{
			Version:   Version,
			Commit:    GitCommit,
			BuildTime: BuildDate,
		},
	})
	if err != nil {
		return cli.NewCommandError("run", err)
	}

	config.OnReload(func(next *config.Config) {
		applyLogLevel(&level, next, logger)
	})

	if cfg.Watch && config.Path() != "" {
		watcher, err := config.NewWatcher(config.Path(), config.DefaultDebounceInterval, logger)
		if err != nil {
			return cli.NewCommandError("run", err)
		}
		defer watcher.Stop()

		go func() {
			if err := watcher.Watch(ctx); err != nil {
				logger.Error("config watcher stopped", "error", err)
			}
		}()
	}

	logger.Info("callisto starting",
		"version", Version,
		"config", config.Path(),
		"address", cfg.Server.ListenAddress,
		"journal", cfg.Journal.Enabled,
		"tracing", tracer.Enabled(),
	)

	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("run", err)
	}
	return nil
}

// applyLogLevel moves the live log level to the one in cfg. Invalid
// levels are rejected at load time, so a parse failure leaves it as is.
func applyLogLevel(level *slog.LevelVar, cfg *config.Config, logger *slog.Logger) {
	next, err := logging.ParseLevel(cfg.Telemetry.Logging.Level)
	if err != nil {
		return
	}
	if level.Level() != next {
		logger.Info("log level changed", "from", level.Level().String(), "to", next.String())
		level.Set(next)
	}
}
