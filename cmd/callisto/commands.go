package main

import (
	"path"
	"strings"

	"github.com/spf13/cobra"

	"mercator-hq/callisto/pkg/api/handlers"
	"mercator-hq/callisto/pkg/cli"
	"mercator-hq/callisto/pkg/commands"
)

var commandsFlags struct {
	format string
	all    bool
}

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the commands the server would mount",
	Long: `List every enabled command with its path, configuration headers and
detail parameter. Use --all to include disabled commands.

Examples:
  callisto commands
  callisto commands --format json`,
	Args: cobra.NoArgs,
	RunE: listCommands,
}

func init() {
	rootCmd.AddCommand(commandsCmd)

	commandsCmd.Flags().StringVar(&commandsFlags.format, "format", "text", "output format: text, json, csv")
	commandsCmd.Flags().BoolVar(&commandsFlags.all, "all", false, "include disabled commands")
}

type commandTable []handlers.CommandInfo

func (t commandTable) Header() []string {
	return []string{"NAME", "PATH", "CONFIG HEADERS", "DETAIL PARAM"}
}

func (t commandTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, info := range t {
		headers := strings.Join(info.ConfigHeaders, ",")
		if headers == "" {
			headers = "-"
		}
		detail := info.DetailParam
		if detail == "" {
			detail = "-"
		}
		rows = append(rows, []string{info.Name, info.Path, headers, detail})
	}
	return rows
}

func listCommands(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(commandsFlags.format)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	registry, err := commands.NewRegistry(cfg)
	if err != nil {
		return cli.NewCommandError("commands", err)
	}

	enabled := cfg.Commands.IsEnabled
	if commandsFlags.all {
		enabled = nil
	}
	index := handlers.NewCommandsHandler(registry, path.Join("/", cfg.Server.RoutePrefix), enabled)

	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), commandTable(index.Commands()))
}
