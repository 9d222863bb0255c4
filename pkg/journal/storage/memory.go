package storage

import (
	"context"
	"slices"
	"sync"

	"mercator-hq/callisto/pkg/journal"
)

// MemoryStorage implements journal.Storage with an in-memory map. Entries
// are lost on restart.
type MemoryStorage struct {
	entries map[string]*journal.Entry
	mu      sync.RWMutex
}

// NewMemoryStorage creates an empty in-memory backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		entries: make(map[string]*journal.Entry),
	}
}

func (s *MemoryStorage) Store(ctx context.Context, entry *journal.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entryCopy := *entry
	s.entries[entry.ID] = &entryCopy
	return nil
}

func (s *MemoryStorage) Query(ctx context.Context, query *journal.Query) ([]*journal.Entry, error) {
	s.mu.RLock()
	results := []*journal.Entry{}
	for _, entry := range s.entries {
		if query.Matches(entry) {
			entryCopy := *entry
			results = append(results, &entryCopy)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(results, func(a, b *journal.Entry) int {
		if query.Ascending {
			return a.Time.Compare(b.Time)
		}
		return b.Time.Compare(a.Time)
	})

	if query.Offset >= len(results) {
		return []*journal.Entry{}, nil
	}
	results = results[query.Offset:]
	if query.Limit > 0 && query.Limit < len(results) {
		results = results[:query.Limit]
	}
	return results, nil
}

func (s *MemoryStorage) Count(ctx context.Context, query *journal.Query) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, entry := range s.entries {
		if query.Matches(entry) {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStorage) Delete(ctx context.Context, query *journal.Query) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, entry := range s.entries {
		if query.Matches(entry) {
			delete(s.entries, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *MemoryStorage) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]*journal.Entry)
	return nil
}

// Size returns the number of stored entries.
func (s *MemoryStorage) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}
