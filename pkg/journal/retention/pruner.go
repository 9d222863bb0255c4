// Package retention prunes old journal entries by age and by count.
package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mercator-hq/callisto/pkg/config"
	"mercator-hq/callisto/pkg/journal"
)

// Pruner enforces the retention policy on a journal.Storage.
type Pruner struct {
	storage   journal.Storage
	config    config.RetentionConfig
	logger    *slog.Logger
	scheduler *Scheduler
	now       func() time.Time
}

// NewPruner creates a pruner for storage.
func NewPruner(storage journal.Storage, cfg config.RetentionConfig) *Pruner {
	p := &Pruner{
		storage: storage,
		config:  cfg,
		logger:  slog.Default().With("component", "journal.retention"),
		now:     time.Now,
	}
	p.scheduler = NewScheduler(p)
	return p
}

// Prune deletes entries older than the retention period, then the oldest
// entries beyond the maximum count. It returns the total deleted.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	var total int64

	if p.config.Days > 0 {
		deleted, err := p.pruneByAge(ctx)
		if err != nil {
			return total, &journal.RetentionError{Phase: "age", Cause: err}
		}
		total += deleted
	}

	if p.config.MaxEntries > 0 {
		deleted, err := p.pruneByCount(ctx)
		if err != nil {
			return total, &journal.RetentionError{Phase: "count", Cause: err}
		}
		total += deleted
	}

	if total > 0 {
		p.logger.Info("journal pruning completed",
			"total_deleted", total,
			"retention_days", p.config.Days,
			"max_entries", p.config.MaxEntries,
		)
	} else {
		p.logger.Debug("no journal entries pruned")
	}
	return total, nil
}

func (p *Pruner) pruneByAge(ctx context.Context) (int64, error) {
	cutoff := p.now().AddDate(0, 0, -p.config.Days)
	return p.storage.Delete(ctx, &journal.Query{EndTime: &cutoff})
}

func (p *Pruner) pruneByCount(ctx context.Context) (int64, error) {
	count, err := p.storage.Count(ctx, &journal.Query{})
	if err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	if count <= p.config.MaxEntries {
		return 0, nil
	}

	excess := count - p.config.MaxEntries
	oldest, err := p.storage.Query(ctx, &journal.Query{
		Ascending: true,
		Limit:     int(excess),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to query oldest entries: %w", err)
	}
	if len(oldest) == 0 {
		return 0, nil
	}

	// Entries sharing the cutoff timestamp go too.
	cutoff := oldest[len(oldest)-1].Time
	return p.storage.Delete(ctx, &journal.Query{EndTime: &cutoff})
}

// Start schedules pruning according to the configured cron expression.
func (p *Pruner) Start(ctx context.Context) error {
	return p.scheduler.Start(ctx)
}

// Stop stops scheduled pruning.
func (p *Pruner) Stop() {
	p.scheduler.Stop()
}

// NextPruning returns the next scheduled run, or nil when not scheduled.
func (p *Pruner) NextPruning() *time.Time {
	return p.scheduler.NextRun()
}
