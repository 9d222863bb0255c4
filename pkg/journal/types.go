package journal

import (
	"context"
	"time"
)

// Entry is one recorded command invocation.
type Entry struct {
	ID            string        `json:"id"`
	RequestID     string        `json:"request_id"`
	Command       string        `json:"command"`
	Mode          string        `json:"mode"`
	Outcome       string        `json:"outcome"`
	ErrorType     string        `json:"error_type,omitempty"`
	UpstreamCalls int           `json:"upstream_calls"`
	Duration      time.Duration `json:"duration"`
	Time          time.Time     `json:"time"`
}

// Query filters journal entries. Zero values match everything.
type Query struct {
	// StartTime and EndTime bound Entry.Time, both inclusive.
	StartTime *time.Time
	EndTime   *time.Time

	Command string
	Outcome string

	// Limit caps the number of entries returned. 0 means no limit.
	Limit  int
	Offset int

	// Ascending returns the oldest entries first. Newest first otherwise.
	Ascending bool
}

// Matches reports whether e satisfies the filters of q.
func (q *Query) Matches(e *Entry) bool {
	if q.StartTime != nil && e.Time.Before(*q.StartTime) {
		return false
	}
	if q.EndTime != nil && e.Time.After(*q.EndTime) {
		return false
	}
	if q.Command != "" && e.Command != q.Command {
		return false
	}
	if q.Outcome != "" && e.Outcome != q.Outcome {
		return false
	}
	return true
}

// Storage persists journal entries. Implementations are safe for
// concurrent use.
type Storage interface {
	// Store persists one entry.
	Store(ctx context.Context, entry *Entry) error

	// Query returns the entries matching query, ordered by time.
	Query(ctx context.Context, query *Query) ([]*Entry, error)

	// Count returns the number of entries matching query. Limit and
	// Offset are ignored.
	Count(ctx context.Context, query *Query) (int64, error)

	// Delete removes the entries matching query and returns how many were
	// removed. Limit and Offset are ignored.
	Delete(ctx context.Context, query *Query) (int64, error)

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	Close() error
}
