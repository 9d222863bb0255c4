package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"mercator-hq/callisto/pkg/command"
	"mercator-hq/callisto/pkg/telemetry/logging"
)

// RecoveryMiddleware recovers from panics and answers with the generic
// message envelope. The stack is logged, never returned.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				slog.ErrorContext(r.Context(), "panic in handler",
					"error", rec,
					"request_id", logging.GetRequestID(r.Context()),
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)

				command.WriteResponse(w, command.Generic())
			}
		}()

		next.ServeHTTP(w, r)
	})
}
