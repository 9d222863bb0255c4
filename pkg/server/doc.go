// Package server serves the commands over HTTP.
//
// NewRouter mounts every registered command at <route prefix>/<name> on a
// chi router, together with the operational endpoints:
//
//	GET /commands  index of enabled commands
//	GET /health    liveness
//	GET /ready     readiness (journal storage when enabled)
//	GET /version   build information
//	GET /metrics   Prometheus scrape endpoint when metrics are enabled
//
// Command routes accept any method. OPTIONS answers the CORS preflight with
// an empty 200; everything else runs the command and answers 200 with an
// envelope. Disabled commands answer 404.
//
// Server wraps the router with lifecycle management: Start blocks until
// the context is cancelled or SIGINT/SIGTERM arrives, then shuts down
// gracefully within the configured timeout.
package server
