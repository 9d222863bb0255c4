package middleware

import (
	"context"
	"time"
)

type contextKey string

// StartTimeKey stores the request start time.
const StartTimeKey contextKey = "start_time"

// GetStartTime extracts the request start time from the context. Returns
// the zero time if not found.
func GetStartTime(ctx context.Context) time.Time {
	if startTime, ok := ctx.Value(StartTimeKey).(time.Time); ok {
		return startTime
	}
	return time.Time{}
}
