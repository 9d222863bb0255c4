// Package recorder writes journal entries asynchronously so command
// handlers never wait on storage.
package recorder

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"mercator-hq/callisto/pkg/command"
	"mercator-hq/callisto/pkg/config"
	"mercator-hq/callisto/pkg/journal"
)

// DropObserver is notified when an entry is dropped because the buffer is
// full or the recorder is closed.
type DropObserver interface {
	JournalEntryDropped()
}

// Recorder implements command.Recorder on top of a journal.Storage.
type Recorder struct {
	storage      journal.Storage
	writeTimeout time.Duration
	entries      chan *journal.Entry
	done         chan struct{}
	closeOnce    sync.Once

	// mu orders enqueues before Close: once closed is set under the write
	// lock, no send is in flight and the worker's final drain sees them all.
	mu     sync.RWMutex
	closed bool

	wg           sync.WaitGroup
	drops        DropObserver
	logger       *slog.Logger
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithDropObserver reports dropped entries to obs.
func WithDropObserver(obs DropObserver) Option {
	return func(r *Recorder) {
		r.drops = obs
	}
}

// New starts a recorder writing to storage.
func New(storage journal.Storage, cfg *config.JournalConfig, opts ...Option) *Recorder {
	buffer := cfg.Buffer
	if buffer <= 0 {
		buffer = config.DefaultJournalBuffer
	}
	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = config.DefaultJournalWriteTimeout
	}

	r := &Recorder{
		storage:      storage,
		writeTimeout: writeTimeout,
		entries:      make(chan *journal.Entry, buffer),
		done:         make(chan struct{}),
		logger:       slog.Default().With("component", "journal.recorder"),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.wg.Add(1)
	go r.worker()

	r.logger.Info("journal recorder initialized",
		"buffer", buffer,
		"write_timeout", writeTimeout,
	)
	return r
}

// RecordInvocation enqueues inv. It never blocks: when the buffer is full
// the entry is dropped.
func (r *Recorder) RecordInvocation(ctx context.Context, inv command.Invocation) {
	entry := &journal.Entry{
		ID:            uuid.New().String(),
		RequestID:     inv.RequestID,
		Command:       inv.Command,
		Mode:          inv.Mode,
		Outcome:       inv.Outcome,
		ErrorType:     inv.ErrorType,
		UpstreamCalls: inv.UpstreamCalls,
		Duration:      inv.Duration,
		Time:          inv.Time,
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		r.drop(entry, "recorder closed")
		return
	}

	select {
	case r.entries <- entry:
	default:
		r.drop(entry, "buffer full")
	}
}

// Close stops accepting entries and waits until the buffered ones are
// written.
func (r *Recorder) Close() error {
	r.closeOnce.Do(func() {
		r.mu.Lock()
		r.closed = true
		close(r.done)
		r.mu.Unlock()

		r.wg.Wait()
		r.logger.Info("journal recorder shut down")
	})
	return nil
}

func (r *Recorder) drop(entry *journal.Entry, reason string) {
	r.logger.Warn("dropping journal entry",
		"reason", reason,
		"command", entry.Command,
		"request_id", entry.RequestID,
	)
	if r.drops != nil {
		r.drops.JournalEntryDropped()
	}
}

func (r *Recorder) worker() {
	defer r.wg.Done()

	for {
		select {
		case entry := <-r.entries:
			r.write(entry)
		case <-r.done:
			for {
				select {
				case entry := <-r.entries:
					r.write(entry)
				default:
					return
				}
			}
		}
	}
}

func (r *Recorder) write(entry *journal.Entry) {
	ctx, cancel := context.WithTimeout(context.Background(), r.writeTimeout)
	defer cancel()

	if err := r.storage.Store(ctx, entry); err != nil {
		r.logger.Error("failed to store journal entry",
			"entry_id", entry.ID,
			"request_id", entry.RequestID,
			"error", err,
		)
		return
	}

	r.logger.Debug("journal entry recorded",
		"entry_id", entry.ID,
		"command", entry.Command,
		"outcome", entry.Outcome,
	)
}
