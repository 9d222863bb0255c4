package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"mercator-hq/callisto/pkg/config"
	"mercator-hq/callisto/pkg/journal"
)

// Supported database/sql driver names.
const (
	DriverPureGo = "sqlite"
	DriverCgo    = "sqlite3"
)

const defaultQueryLimit = 100

// SQLiteStorage implements journal.Storage using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	config config.SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStorage opens (or creates) the database at cfg.Path, enables WAL
// mode and applies the schema.
func NewSQLiteStorage(cfg config.SQLiteConfig) (*SQLiteStorage, error) {
	if cfg.Path == "" {
		return nil, journal.NewStorageError("sqlite", "open", errors.New("path cannot be empty"))
	}
	if cfg.Driver == "" {
		cfg.Driver = config.DefaultJournalSQLiteDriver
	}
	if cfg.MaxOpenConns <= 0 {
		cfg.MaxOpenConns = config.DefaultJournalSQLiteConns
	}
	if cfg.BusyTimeout <= 0 {
		cfg.BusyTimeout = config.DefaultJournalBusyTimeout
	}

	dsn, err := buildDSN(cfg)
	if err != nil {
		return nil, journal.NewStorageError("sqlite", "open", err)
	}

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, journal.NewStorageError("sqlite", "open", err)
		}
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, journal.NewStorageError("sqlite", "open", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxOpenConns)

	s := &SQLiteStorage{
		db:     db,
		config: cfg,
		logger: slog.Default().With("component", "journal.storage.sqlite"),
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	s.logger.Info("SQLite journal storage initialized",
		"path", cfg.Path,
		"driver", cfg.Driver,
		"max_open_conns", cfg.MaxOpenConns,
	)

	return s, nil
}

// buildDSN applies the busy timeout and WAL mode through the connection
// string so every pooled connection gets them.
func buildDSN(cfg config.SQLiteConfig) (string, error) {
	busy := cfg.BusyTimeout.Milliseconds()
	switch cfg.Driver {
	case DriverPureGo:
		return fmt.Sprintf("%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)", cfg.Path, busy), nil
	case DriverCgo:
		return fmt.Sprintf("%s?_busy_timeout=%d&_journal_mode=WAL", cfg.Path, busy), nil
	default:
		return "", fmt.Errorf("unsupported sqlite driver %q", cfg.Driver)
	}
}

func (s *SQLiteStorage) initialize() error {
	if _, err := s.db.Exec(schema); err != nil {
		return journal.NewStorageError("sqlite", "create_schema", err)
	}
	if _, err := s.db.Exec(insertSchemaVersion, SchemaVersion); err != nil {
		return journal.NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRow(getSchemaVersion).Scan(&version)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return journal.NewStorageError("sqlite", "get_schema_version", err)
	}
	if version != SchemaVersion {
		return journal.NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	s.logger.Debug("schema version verified", "version", version)
	return nil
}

func (s *SQLiteStorage) Store(ctx context.Context, entry *journal.Entry) error {
	var errorType any
	if entry.ErrorType != "" {
		errorType = entry.ErrorType
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO journal (
			id, request_id, command, mode, outcome, error_type,
			upstream_calls, duration_ns, time_ns
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.RequestID, entry.Command, entry.Mode, entry.Outcome, errorType,
		entry.UpstreamCalls, int64(entry.Duration), entry.Time.UnixNano(),
	)
	if err != nil {
		return journal.NewStorageError("sqlite", "store", err)
	}
	return nil
}

func (s *SQLiteStorage) Query(ctx context.Context, query *journal.Query) ([]*journal.Entry, error) {
	where, args := buildWhereClause(query)

	sqlQuery := `SELECT id, request_id, command, mode, outcome, error_type,
		upstream_calls, duration_ns, time_ns FROM journal` + where

	if query.Ascending {
		sqlQuery += " ORDER BY time_ns ASC"
	} else {
		sqlQuery += " ORDER BY time_ns DESC"
	}

	limit := defaultQueryLimit
	if query.Limit > 0 {
		limit = query.Limit
	}
	sqlQuery += fmt.Sprintf(" LIMIT %d", limit)
	if query.Offset > 0 {
		sqlQuery += fmt.Sprintf(" OFFSET %d", query.Offset)
	}

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, journal.NewStorageError("sqlite", "query", err)
	}
	defer rows.Close()

	entries := []*journal.Entry{}
	for rows.Next() {
		entry, err := scanRow(rows)
		if err != nil {
			return nil, journal.NewStorageError("sqlite", "scan", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, journal.NewStorageError("sqlite", "query", err)
	}
	return entries, nil
}

func (s *SQLiteStorage) Count(ctx context.Context, query *journal.Query) (int64, error) {
	where, args := buildWhereClause(query)

	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM journal"+where, args...).Scan(&count); err != nil {
		return 0, journal.NewStorageError("sqlite", "count", err)
	}
	return count, nil
}

func (s *SQLiteStorage) Delete(ctx context.Context, query *journal.Query) (int64, error) {
	where, args := buildWhereClause(query)

	result, err := s.db.ExecContext(ctx, "DELETE FROM journal"+where, args...)
	if err != nil {
		return 0, journal.NewStorageError("sqlite", "delete", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, journal.NewStorageError("sqlite", "delete", err)
	}
	return count, nil
}

func (s *SQLiteStorage) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return journal.NewStorageError("sqlite", "ping", err)
	}
	return nil
}

func (s *SQLiteStorage) Close() error {
	if err := s.db.Close(); err != nil {
		return journal.NewStorageError("sqlite", "close", err)
	}
	s.logger.Info("SQLite journal storage closed")
	return nil
}

// buildWhereClause returns a WHERE clause (with leading space, or empty)
// and its arguments.
func buildWhereClause(query *journal.Query) (string, []any) {
	var (
		conditions []string
		args       []any
	)

	if query.StartTime != nil {
		conditions = append(conditions, "time_ns >= ?")
		args = append(args, query.StartTime.UnixNano())
	}
	if query.EndTime != nil {
		conditions = append(conditions, "time_ns <= ?")
		args = append(args, query.EndTime.UnixNano())
	}
	if query.Command != "" {
		conditions = append(conditions, "command = ?")
		args = append(args, query.Command)
	}
	if query.Outcome != "" {
		conditions = append(conditions, "outcome = ?")
		args = append(args, query.Outcome)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func scanRow(rows *sql.Rows) (*journal.Entry, error) {
	var (
		entry      journal.Entry
		errorType  sql.NullString
		durationNs int64
		timeNs     int64
	)

	err := rows.Scan(
		&entry.ID, &entry.RequestID, &entry.Command, &entry.Mode, &entry.Outcome, &errorType,
		&entry.UpstreamCalls, &durationNs, &timeNs,
	)
	if err != nil {
		return nil, err
	}

	if errorType.Valid {
		entry.ErrorType = errorType.String
	}
	entry.Duration = time.Duration(durationNs)
	entry.Time = time.Unix(0, timeNs).UTC()
	return &entry, nil
}
