package recorder

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"mercator-hq/callisto/pkg/command"
	"mercator-hq/callisto/pkg/config"
	"mercator-hq/callisto/pkg/journal"
	"mercator-hq/callisto/pkg/journal/storage"
)

var _ command.Recorder = (*Recorder)(nil)

type dropCounter struct {
	n atomic.Int64
}

func (d *dropCounter) JournalEntryDropped() {
	d.n.Add(1)
}

// blockingStorage holds every Store call until release is closed.
type blockingStorage struct {
	*storage.MemoryStorage
	release chan struct{}
	once    sync.Once
	started chan struct{}
}

func newBlockingStorage() *blockingStorage {
	return &blockingStorage{
		MemoryStorage: storage.NewMemoryStorage(),
		release:       make(chan struct{}),
		started:       make(chan struct{}),
	}
}

func (s *blockingStorage) Store(ctx context.Context, entry *journal.Entry) error {
	s.once.Do(func() { close(s.started) })
	<-s.release
	return s.MemoryStorage.Store(ctx, entry)
}

type failingStorage struct {
	*storage.MemoryStorage
}

func (failingStorage) Store(context.Context, *journal.Entry) error {
	return errors.New("disk full")
}

func invocation(name string) command.Invocation {
	return command.Invocation{
		RequestID:     "req-1",
		Command:       name,
		Mode:          "list",
		Outcome:       command.OutcomeSuccess,
		UpstreamCalls: 2,
		Duration:      30 * time.Millisecond,
		Time:          time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRecorder_WritesEntries(t *testing.T) {
	store := storage.NewMemoryStorage()
	rec := New(store, &config.JournalConfig{Buffer: 10})

	rec.RecordInvocation(context.Background(), invocation("search-npm"))
	rec.RecordInvocation(context.Background(), invocation("github-stars"))
	rec.Close()

	entries, err := store.Query(context.Background(), &journal.Query{Ascending: true})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	got := entries[0]
	if _, err := uuid.Parse(got.ID); err != nil {
		t.Errorf("expected uuid id, got %q", got.ID)
	}
	if got.RequestID != "req-1" || got.Outcome != command.OutcomeSuccess || got.UpstreamCalls != 2 {
		t.Errorf("unexpected entry: %+v", got)
	}
	if got.Duration != 30*time.Millisecond {
		t.Errorf("expected duration 30ms, got %v", got.Duration)
	}
}

func TestRecorder_DropsWhenBufferFull(t *testing.T) {
	store := newBlockingStorage()
	drops := &dropCounter{}
	rec := New(store, &config.JournalConfig{Buffer: 1}, WithDropObserver(drops))

	// First entry is taken by the worker and blocks in Store.
	rec.RecordInvocation(context.Background(), invocation("a"))
	<-store.started

	// Second fills the buffer, third is dropped.
	rec.RecordInvocation(context.Background(), invocation("b"))
	rec.RecordInvocation(context.Background(), invocation("c"))

	if got := drops.n.Load(); got != 1 {
		t.Errorf("expected 1 drop, got %d", got)
	}

	close(store.release)
	rec.Close()

	if store.Size() != 2 {
		t.Errorf("expected 2 stored entries, got %d", store.Size())
	}
}

func TestRecorder_DropsAfterClose(t *testing.T) {
	store := storage.NewMemoryStorage()
	drops := &dropCounter{}
	rec := New(store, &config.JournalConfig{}, WithDropObserver(drops))

	if err := rec.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}

	rec.RecordInvocation(context.Background(), invocation("a"))
	if drops.n.Load() != 1 {
		t.Errorf("expected entry to be dropped after close")
	}
	if store.Size() != 0 {
		t.Errorf("expected no stored entries, got %d", store.Size())
	}
}

func TestRecorder_CloseRacingRecordsLosesNothing(t *testing.T) {
	const writers, perWriter = 8, 50

	store := storage.NewMemoryStorage()
	drops := &dropCounter{}
	rec := New(store, &config.JournalConfig{Buffer: writers * perWriter}, WithDropObserver(drops))

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for j := 0; j < perWriter; j++ {
				rec.RecordInvocation(context.Background(), invocation("search-npm"))
			}
		}()
	}

	close(start)
	rec.Close()
	wg.Wait()

	if got := int64(store.Size()) + drops.n.Load(); got != writers*perWriter {
		t.Errorf("stored %d + dropped %d = %d, want %d", store.Size(), drops.n.Load(), got, writers*perWriter)
	}
}

func TestRecorder_StoreErrorsAreNotFatal(t *testing.T) {
	rec := New(failingStorage{storage.NewMemoryStorage()}, &config.JournalConfig{})
	rec.RecordInvocation(context.Background(), invocation("a"))
	if err := rec.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}
