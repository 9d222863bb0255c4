package storage

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Times and durations are stored as integer nanoseconds so both drivers
// read them back identically.
const schema = `
CREATE TABLE IF NOT EXISTS journal (
    id TEXT PRIMARY KEY,
    request_id TEXT NOT NULL,
    command TEXT NOT NULL,
    mode TEXT NOT NULL,
    outcome TEXT NOT NULL,
    error_type TEXT,
    upstream_calls INTEGER NOT NULL DEFAULT 0,
    duration_ns INTEGER NOT NULL,
    time_ns INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_journal_time ON journal(time_ns);
CREATE INDEX IF NOT EXISTS idx_journal_command ON journal(command);
CREATE INDEX IF NOT EXISTS idx_journal_outcome ON journal(outcome);
`

const insertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

const getSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`
