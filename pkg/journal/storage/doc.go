// Package storage provides journal storage backends.
//
// MemoryStorage keeps entries in a map and is the default. SQLiteStorage
// persists them to a database file through either the pure Go driver
// ("sqlite", modernc.org/sqlite) or the cgo driver ("sqlite3",
// github.com/mattn/go-sqlite3). New picks the backend from configuration.
package storage
