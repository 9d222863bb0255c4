package journal

import "fmt"

// StorageError represents an error from a storage backend.
type StorageError struct {
	Backend   string // "memory", "sqlite"
	Operation string // "open", "store", "query", ...
	Cause     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("journal storage error [backend=%s, operation=%s]: %v", e.Backend, e.Operation, e.Cause)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates a new StorageError.
func NewStorageError(backend, operation string, cause error) *StorageError {
	return &StorageError{
		Backend:   backend,
		Operation: operation,
		Cause:     cause,
	}
}

// RetentionError is returned when pruning fails.
type RetentionError struct {
	Phase string // "age", "count"
	Cause error
}

func (e *RetentionError) Error() string {
	return fmt.Sprintf("journal retention error [phase=%s]: %v", e.Phase, e.Cause)
}

func (e *RetentionError) Unwrap() error {
	return e.Cause
}
