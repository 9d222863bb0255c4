package storage

import (
	"fmt"

	"mercator-hq/callisto/pkg/config"
	"mercator-hq/callisto/pkg/journal"
)

// New opens the backend selected by cfg.Backend.
func New(cfg *config.JournalConfig) (journal.Storage, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemoryStorage(), nil
	case "sqlite":
		return NewSQLiteStorage(cfg.SQLite)
	default:
		return nil, journal.NewStorageError(cfg.Backend, "open", fmt.Errorf("unknown backend %q", cfg.Backend))
	}
}
