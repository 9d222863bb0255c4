package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/callisto/pkg/cli"
	"mercator-hq/callisto/pkg/journal"
	"mercator-hq/callisto/pkg/journal/retention"
	"mercator-hq/callisto/pkg/journal/storage"
)

var journalFlags struct {
	command string
	outcome string
	since   time.Duration
	until   string
	limit   int
	offset  int
	format  string
}

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect the invocation journal",
	Long: `Inspect and prune the invocation journal.

The journal records one entry per command invocation: the command, the
dispatch mode, the outcome, the number of upstream calls and the duration.
Queries, headers and credentials are never recorded.

Subcommands:
  list   - List entries with filters
  count  - Count entries with filters
  prune  - Apply the retention policy once`,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List journal entries",
	Long: `List journal entries, newest first.

Examples:
  # Everything from the last day
  callisto journal list --since 24h

  # Failed GitHub invocations as CSV
  callisto journal list --command github-stars --outcome failure --format csv`,
	Args: cobra.NoArgs,
	RunE: listJournal,
}

var journalCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Count journal entries",
	Args:  cobra.NoArgs,
	RunE:  countJournal,
}

var journalPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Apply the retention policy once",
	Long: `Delete entries older than journal.retention.days and trim the journal
to journal.retention.max_entries, then report how many were removed.`,
	Args: cobra.NoArgs,
	RunE: pruneJournal,
}

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalListCmd, journalCountCmd, journalPruneCmd)

	for _, c := range []*cobra.Command{journalListCmd, journalCountCmd} {
		c.Flags().StringVar(&journalFlags.command, "command", "", "filter by command name")
		c.Flags().StringVar(&journalFlags.outcome, "outcome", "", "filter by outcome (success, config, auth_failure, not_found, failure, panic)")
		c.Flags().DurationVar(&journalFlags.since, "since", 0, "only entries newer than this duration")
		c.Flags().StringVar(&journalFlags.until, "until", "", "only entries at or before this RFC3339 time")
	}
	journalListCmd.Flags().IntVar(&journalFlags.limit, "limit", 100, "maximum entries to return")
	journalListCmd.Flags().IntVar(&journalFlags.offset, "offset", 0, "entries to skip")
	journalListCmd.Flags().StringVar(&journalFlags.format, "format", "text", "output format: text, json, csv")
}

type entryTable []*journal.Entry

func (t entryTable) Header() []string {
	return []string{"TIME", "COMMAND", "MODE", "OUTCOME", "ERROR", "CALLS", "DURATION", "REQUEST ID"}
}

func (t entryTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, e := range t {
		errType := e.ErrorType
		if errType == "" {
			errType = "-"
		}
		rows = append(rows, []string{
			e.Time.UTC().Format(time.RFC3339),
			e.Command,
			e.Mode,
			e.Outcome,
			errType,
			strconv.Itoa(e.UpstreamCalls),
			e.Duration.Round(time.Millisecond).String(),
			e.RequestID,
		})
	}
	return rows
}

// buildJournalQuery converts the filter flags into a query.
func buildJournalQuery(now time.Time) (*journal.Query, error) {
	q := &journal.Query{
		Command: journalFlags.command,
		Outcome: journalFlags.outcome,
		Limit:   journalFlags.limit,
		Offset:  journalFlags.offset,
	}
	if journalFlags.since > 0 {
		start := now.Add(-journalFlags.since)
		q.StartTime = &start
	}
	if journalFlags.until != "" {
		end, err := time.Parse(time.RFC3339, journalFlags.until)
		if err != nil {
			return nil, cli.NewConfigError("until", fmt.Sprintf("invalid RFC3339 time %q", journalFlags.until))
		}
		q.EndTime = &end
	}
	if q.StartTime != nil && q.EndTime != nil && q.EndTime.Before(*q.StartTime) {
		return nil, cli.NewConfigError("until", "must not be before --since")
	}
	return q, nil
}

func openJournal() (journal.Storage, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Journal.Backend == "memory" {
		return nil, cli.NewConfigError("journal.backend", "the memory journal only lives inside a running server; configure sqlite to inspect it")
	}
	store, err := storage.New(&cfg.Journal)
	if err != nil {
		return nil, cli.NewCommandError("journal", err)
	}
	return store, nil
}

func listJournal(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(journalFlags.format)
	if err != nil {
		return err
	}
	query, err := buildJournalQuery(time.Now())
	if err != nil {
		return err
	}

	store, err := openJournal()
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Query(cmd.Context(), query)
	if err != nil {
		return cli.NewCommandError("journal list", err)
	}

	if format == cli.FormatJSON {
		if entries == nil {
			entries = []*journal.Entry{}
		}
		return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), entries)
	}
	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), entryTable(entries))
}

func countJournal(cmd *cobra.Command, args []string) error {
	query, err := buildJournalQuery(time.Now())
	if err != nil {
		return err
	}

	store, err := openJournal()
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Count(cmd.Context(), query)
	if err != nil {
		return cli.NewCommandError("journal count", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), n)
	return nil
}

func pruneJournal(cmd *cobra.Command, args []string) error {
	store, err := openJournal()
	if err != nil {
		return err
	}
	defer store.Close()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	removed, err := retention.NewPruner(store, cfg.Journal.Retention).Prune(cmd.Context())
	if err != nil {
		return cli.NewCommandError("journal prune", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Pruned %d entries\n", removed)
	return nil
}
