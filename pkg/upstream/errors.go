package upstream

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

const maxErrorBody = 200

// StatusError is returned when an upstream answers with a non-2xx status
// that is not an authentication failure.
type StatusError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream %q returned status %d", e.Service, e.StatusCode)
	}
	return fmt.Sprintf("upstream %q returned status %d: %s", e.Service, e.StatusCode, truncate(e.Body, maxErrorBody))
}

// AuthError is returned when an upstream rejects the supplied credential.
type AuthError struct {
	Service    string
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream %q authentication failed (status %d)", e.Service, e.StatusCode)
	}
	return fmt.Sprintf("upstream %q authentication failed (status %d): %s", e.Service, e.StatusCode, truncate(e.Message, maxErrorBody))
}

// ParseError is returned when a response body cannot be decoded.
type ParseError struct {
	Service     string
	RawResponse string
	Cause       error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("upstream %q response parse error: %v", e.Service, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// TimeoutError is returned when a request exceeds its deadline.
type TimeoutError struct {
	Service string
	Timeout time.Duration
	Cause   error
}

func (e *TimeoutError) Error() string {
	if e.Timeout > 0 {
		return fmt.Sprintf("upstream %q request timed out after %v", e.Service, e.Timeout)
	}
	return fmt.Sprintf("upstream %q request timed out", e.Service)
}

func (e *TimeoutError) Unwrap() error {
	return e.Cause
}

// IsAuth reports whether err is an upstream credential rejection.
func IsAuth(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}

// IsStatus reports whether err carries the given upstream status code.
func IsStatus(err error, code int) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == code
	}
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.StatusCode == code
	}
	return false
}

// ErrorType returns a short label for err, used as a metric label.
func ErrorType(err error) string {
	var (
		statusErr  *StatusError
		authErr    *AuthError
		parseErr   *ParseError
		timeoutErr *TimeoutError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &authErr):
		return "auth"
	case errors.As(err, &statusErr):
		if statusErr.StatusCode == http.StatusNotFound {
			return "not_found"
		}
		return "status"
	case errors.As(err, &parseErr):
		return "parse"
	case errors.As(err, &timeoutErr):
		return "timeout"
	default:
		return "transport"
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
