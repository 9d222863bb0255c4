package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"mercator-hq/callisto/pkg/cli"
	"mercator-hq/callisto/pkg/command"
	"mercator-hq/callisto/pkg/commands"
	"mercator-hq/callisto/pkg/envelope"
)

var invokeFlags struct {
	keywords string
	params   []string
	headers  []string
	timeout  time.Duration
	compact  bool
}

var invokeCmd = &cobra.Command{
	Use:   "invoke <command>",
	Short: "Run a command once and print its envelope",
	Long: `Run a command in-process, exactly as the server would for one request,
and print the resulting envelope as JSON. The outcome is written to stderr.

Configuration headers are passed with --header and detail parameters with
--param. Header names are case-sensitive and must match the command's
declared names.

Examples:
  # Search npm
  callisto invoke search-npm --keywords chi

  # List starred repositories
  callisto invoke github-stars --header "access-token=ghp_..."

  # Show the actions for one Vercel project
  callisto invoke vercel-projects --header "token=..." --param project=web`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeCommandNames,
	RunE:              runInvoke,
}

func init() {
	rootCmd.AddCommand(invokeCmd)

	invokeCmd.Flags().StringVarP(&invokeFlags.keywords, "keywords", "k", "", "free-text query")
	invokeCmd.Flags().StringArrayVarP(&invokeFlags.params, "param", "p", nil, "query parameter as name=value (repeatable)")
	invokeCmd.Flags().StringArrayVarP(&invokeFlags.headers, "header", "H", nil, "configuration header as name=value (repeatable)")
	invokeCmd.Flags().DurationVar(&invokeFlags.timeout, "timeout", 30*time.Second, "overall deadline for the invocation")
	invokeCmd.Flags().BoolVar(&invokeFlags.compact, "compact", false, "print the envelope without indentation")
}

func runInvoke(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	registry, err := commands.NewRegistry(cfg)
	if err != nil {
		return cli.NewCommandError("invoke", err)
	}

	name := args[0]
	target, ok := registry.Lookup(name)
	if !ok || !cfg.Commands.IsEnabled(name) {
		return cli.NewCommandError("invoke", fmt.Errorf("unknown or disabled command %q (available: %s)",
			name, strings.Join(registry.Names(), ", ")))
	}

	headers, err := parseKV(invokeFlags.headers)
	if err != nil {
		return cli.NewConfigError("header", err.Error())
	}
	params, err := parseKV(invokeFlags.params)
	if err != nil {
		return cli.NewConfigError("param", err.Error())
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), invokeFlags.timeout)
	defer cancel()

	result := command.Execute(ctx, target, command.Request{
		Query:   invokeFlags.keywords,
		Headers: headers,
		Params:  params,
	})

	data, err := renderEnvelope(result.Response, !invokeFlags.compact)
	if err != nil {
		return cli.NewCommandError("invoke", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	fmt.Fprintf(cmd.ErrOrStderr(), "mode=%s outcome=%s\n", result.Mode, result.Outcome())
	if result.Err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", result.Err)
	}
	return nil
}

// parseKV parses name=value pairs. Later pairs win.
func parseKV(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("expected name=value, got %q", pair)
		}
		out[name] = value
	}
	return out, nil
}

func renderEnvelope(resp *envelope.Response, indent bool) ([]byte, error) {
	data, err := envelope.Marshal(resp)
	if err != nil {
		return nil, err
	}
	if !indent {
		return data, nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func completeCommandNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return commands.Names, cobra.ShellCompDirectiveNoFileComp
}
