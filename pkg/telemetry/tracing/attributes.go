package tracing

// Span attribute keys shared by command and upstream spans.
const (
	AttrCommandName          = "command.name"
	AttrCommandMode          = "command.mode"
	AttrCommandOutcome       = "command.outcome"
	AttrCommandUpstreamCalls = "command.upstream_calls"
	AttrRequestID            = "request.id"

	AttrUpstreamService = "upstream.service"
	AttrHTTPMethod      = "http.method"
	AttrHTTPHost        = "http.host"
	AttrHTTPPath        = "http.path"
	AttrHTTPStatusCode  = "http.status_code"

	AttrErrorType = "error.type"
)
