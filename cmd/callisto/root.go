package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mercator-hq/callisto/pkg/cli"
	"mercator-hq/callisto/pkg/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "callisto",
	Short: "Callisto - slapdash commands for third-party APIs",
	Long: `Callisto serves slapdash commands over HTTP. Each command adapts one
third-party API to the slapdash envelope: a configuration form, a list or
masonry view, or an action toast.

Configuration is read from an optional YAML file and CALLISTO_* environment
variables. Without a file the built-in defaults are used.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (defaults and environment when empty)")
}

// loadConfig initializes the global configuration from --config.
func loadConfig() (*config.Config, error) {
	if err := config.Initialize(cfgFile); err != nil {
		return nil, cli.WrapConfigError("config", err)
	}
	return config.MustGetConfig(), nil
}
