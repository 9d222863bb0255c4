package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"mercator-hq/callisto/pkg/cli"
	"mercator-hq/callisto/pkg/envelope"
	"mercator-hq/callisto/pkg/journal"
)

func TestVersionCommand(t *testing.T) {
	origVersion, origCommit := Version, GitCommit
	defer func() { Version, GitCommit = origVersion, origCommit }()
	Version = "0.1.0-test"
	GitCommit = "abc123"

	var out bytes.Buffer
	versionCmd.SetOut(&out)
	defer versionCmd.SetOut(nil)
	versionCmd.Run(versionCmd, nil)

	for _, want := range []string{"Callisto 0.1.0-test", "Git Commit: abc123", "Go Version:"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("version output missing %q:\n%s", want, out.String())
		}
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	want := []string{"run", "invoke", "commands", "validate", "journal", "version", "completion"}
	for _, name := range want {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestParseKV(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []string
		want    map[string]string
		wantErr bool
	}{
		{name: "empty", pairs: nil, want: map[string]string{}},
		{name: "single", pairs: []string{"token=abc"}, want: map[string]string{"token": "abc"}},
		{name: "value with equals", pairs: []string{"q=a=b"}, want: map[string]string{"q": "a=b"}},
		{name: "empty value", pairs: []string{"repo="}, want: map[string]string{"repo": ""}},
		{name: "later wins", pairs: []string{"a=1", "a=2"}, want: map[string]string{"a": "2"}},
		{name: "missing equals", pairs: []string{"token"}, wantErr: true},
		{name: "missing name", pairs: []string{"=value"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseKV(tt.pairs)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseKV() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parseKV() = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("parseKV()[%q] = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

func TestRenderEnvelope(t *testing.T) {
	resp := envelope.Toast("Invalid token")

	compact, err := renderEnvelope(resp, false)
	if err != nil {
		t.Fatalf("renderEnvelope() error = %v", err)
	}
	if strings.Contains(string(compact), "\n") {
		t.Errorf("compact output contains newlines: %s", compact)
	}

	indented, err := renderEnvelope(resp, true)
	if err != nil {
		t.Fatalf("renderEnvelope() error = %v", err)
	}
	if !strings.Contains(string(indented), "\n  ") {
		t.Errorf("indented output not indented: %s", indented)
	}
	if !strings.Contains(string(indented), "Invalid token") {
		t.Errorf("output missing toast message: %s", indented)
	}
}

func TestEntryTable(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	table := entryTable{
		{Command: "search-npm", Mode: "list", Outcome: "success", UpstreamCalls: 1, Duration: 1234567 * time.Nanosecond, Time: at, RequestID: "r1"},
		{Command: "github-stars", Mode: "list", Outcome: "auth_failure", ErrorType: "auth", Time: at, RequestID: "r2"},
	}

	var out bytes.Buffer
	if err := (&cli.CSVFormatter{}).FormatTo(&out, table); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out.String())
	}
	if want := "2026-03-01T12:00:00Z,search-npm,list,success,-,1,1ms,r1"; lines[1] != want {
		t.Errorf("row 1 = %q, want %q", lines[1], want)
	}
	if !strings.Contains(lines[2], ",auth_failure,auth,0,") {
		t.Errorf("row 2 = %q, want error type auth", lines[2])
	}
}

func TestCommandTable(t *testing.T) {
	table := commandTable{
		{Name: "parse-user-agent", Path: "/api/slapdash/parse-user-agent", ConfigHeaders: []string{}},
		{Name: "vercel-projects", Path: "/api/slapdash/vercel-projects", ConfigHeaders: []string{"token"}, RequiredHeader: "token", DetailParam: "project"},
	}

	rows := table.Rows()
	if len(rows) != 2 {
		t.Fatalf("Rows() = %d rows, want 2", len(rows))
	}
	if rows[0][2] != "-" || rows[0][3] != "-" {
		t.Errorf("empty columns = %v, want placeholders", rows[0])
	}
	if rows[1][2] != "token" || rows[1][3] != "project" {
		t.Errorf("row = %v", rows[1])
	}
	if len(table.Header()) != len(rows[0]) {
		t.Errorf("header has %d columns, rows have %d", len(table.Header()), len(rows[0]))
	}
}

func TestBuildJournalQuery(t *testing.T) {
	now := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	reset := func() {
		journalFlags.command = ""
		journalFlags.outcome = ""
		journalFlags.since = 0
		journalFlags.until = ""
		journalFlags.limit = 100
		journalFlags.offset = 0
	}
	defer reset()

	t.Run("filters", func(t *testing.T) {
		reset()
		journalFlags.command = "search-npm"
		journalFlags.outcome = "failure"
		journalFlags.since = 24 * time.Hour
		journalFlags.until = "2026-03-01T18:00:00Z"

		q, err := buildJournalQuery(now)
		if err != nil {
			t.Fatalf("buildJournalQuery() error = %v", err)
		}
		if q.Command != "search-npm" || q.Outcome != "failure" || q.Limit != 100 {
			t.Errorf("query = %+v", q)
		}
		if q.StartTime == nil || !q.StartTime.Equal(now.Add(-24*time.Hour)) {
			t.Errorf("StartTime = %v", q.StartTime)
		}
		if q.EndTime == nil || q.EndTime.Hour() != 18 {
			t.Errorf("EndTime = %v", q.EndTime)
		}
		entry := &journal.Entry{Command: "search-npm", Outcome: "failure", Time: now.Add(-12 * time.Hour)}
		if !q.Matches(entry) {
			t.Error("query should match entry inside the window")
		}
	})

	t.Run("no bounds", func(t *testing.T) {
		reset()
		q, err := buildJournalQuery(now)
		if err != nil {
			t.Fatalf("buildJournalQuery() error = %v", err)
		}
		if q.StartTime != nil || q.EndTime != nil {
			t.Errorf("unexpected bounds: %+v", q)
		}
	})

	t.Run("invalid until", func(t *testing.T) {
		reset()
		journalFlags.until = "yesterday"
		if _, err := buildJournalQuery(now); err == nil {
			t.Fatal("expected error for invalid --until")
		}
	})

	t.Run("until before since", func(t *testing.T) {
		reset()
		journalFlags.since = time.Hour
		journalFlags.until = "2026-03-01T00:00:00Z"
		if _, err := buildJournalQuery(now); err == nil {
			t.Fatal("expected error when --until precedes --since")
		}
	})
}
