// Package logging builds the structured logger used across callisto.
//
// # Overview
//
// Loggers are plain *slog.Logger values. New wraps the JSON or text slog
// handler with two layers:
//   - a context layer that copies request_id, command and mode from the
//     context into every record logged with a *Context method
//   - a redaction layer that scrubs credentials before they are written
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	    Redact: true,
//	})
//	if err != nil {
//	    return err
//	}
//	slog.SetDefault(logger)
//
//	ctx = logging.WithRequestID(ctx, "req-123")
//	logger.InfoContext(ctx, "command completed",
//	    "authorization", "Bearer abc", // written as "***"
//	)
//
// # Redaction
//
// Attribute keys that name a credential (token, api_key, authorization,
// secret, password and friends) have their values replaced outright.
// String values are also scanned for Bearer and Client-ID credentials and
// well-known token prefixes such as GitHub personal access tokens.
package logging
