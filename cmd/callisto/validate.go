package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"mercator-hq/callisto/pkg/cli"
	"mercator-hq/callisto/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration",
	Long: `Load the configuration file with environment overrides applied and
report every invalid field.

Examples:
  callisto validate --config config.yaml

  # Validate the defaults plus CALLISTO_* variables
  callisto validate`,
	Args: cobra.NoArgs,
	RunE: validateConfig,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		var verr config.ValidationError
		if errors.As(err, &verr) {
			out := cmd.ErrOrStderr()
			for _, fe := range verr.Errors {
				fmt.Fprintf(out, "✗ %s\n", fe.Error())
			}
			return cli.NewConfigError("", fmt.Sprintf("%d invalid field(s)", len(verr.Errors)))
		}
		return cli.WrapConfigError("config", err)
	}

	out := cmd.OutOrStdout()
	source := cfgFile
	if source == "" {
		source = "defaults"
	}
	fmt.Fprintf(out, "✓ Configuration valid (%s)\n", source)
	fmt.Fprintf(out, "  listen address: %s\n", cfg.Server.ListenAddress)
	fmt.Fprintf(out, "  route prefix:   %s\n", cfg.Server.RoutePrefix)
	fmt.Fprintf(out, "  journal:        %s\n", journalSummary(cfg))
	return nil
}

func journalSummary(cfg *config.Config) string {
	if !cfg.Journal.Enabled {
		return "disabled"
	}
	if cfg.Journal.Backend == "sqlite" {
		return fmt.Sprintf("sqlite (%s)", cfg.Journal.SQLite.Path)
	}
	return cfg.Journal.Backend
}
