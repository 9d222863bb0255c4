// Package journal defines the invocation journal: an optional operational
// record of handled command invocations.
//
// An Entry describes one invocation by command name, mode, outcome and
// timing. Entries never carry credentials, query text or drill-down
// identifiers, and nothing on the request path reads them back; commands
// stay stateful only in the client.
//
// Subpackages:
//
//   - storage: memory and SQLite backends implementing Storage
//   - recorder: asynchronous writer fed by the command handlers
//   - retention: age and count based pruning on a cron schedule
package journal
