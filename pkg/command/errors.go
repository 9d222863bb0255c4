package command

import (
	"context"
	"errors"

	"mercator-hq/callisto/pkg/envelope"
	"mercator-hq/callisto/pkg/upstream"
)

// Messages shown for failures.
const (
	GenericMessage  = "Oops! Sorry, something went wrong!"
	NotFoundMessage = "Oops, something went wrong!"
)

// ErrNotFound is returned when a drill-down identifier does not resolve.
var ErrNotFound = errors.New("drill-down target not found")

// IsNotFound reports whether err means the drill-down target is unknown,
// either locally or as an upstream 404.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || upstream.IsNotFound(err)
}

// ErrorType labels err for logs, metrics and the journal.
func ErrorType(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return upstream.ErrorType(err)
	}
}

// Generic returns the generic failure message view.
func Generic() *envelope.Response {
	return envelope.Message(GenericMessage)
}

// NotFound returns the view for an unresolvable drill-down target.
func NotFound() *envelope.Response {
	return envelope.Message(NotFoundMessage)
}

// ErrorToast returns a toast carrying the error description.
func ErrorToast(err error) *envelope.Response {
	return envelope.Toast("Error: " + err.Error())
}

// Reconfigure renders the configuration form of cmd with message attached.
// If the form itself cannot be rendered the generic message is returned.
func Reconfigure(ctx context.Context, cmd Command, req Request, message string) *envelope.Response {
	resp, err := cmd.Configure(ctx, req, message)
	if err != nil || resp == nil {
		return Generic()
	}
	return resp
}
