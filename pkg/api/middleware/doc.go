// Package middleware provides HTTP middleware for cross-cutting concerns:
// request IDs, request logging and panic recovery.
//
// The server applies them outermost first:
//
//	Recovery(RequestID(Logging(handler)))
//
// RequestID runs before Logging so every log line carries the request ID.
// Recovery answers a panic with the generic message envelope and status
// 200, the same shape a failing command produces, so clients never see a
// bare 500 from a command route.
package middleware
