package command

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"mercator-hq/callisto/pkg/envelope"
	"mercator-hq/callisto/pkg/telemetry/logging"
	"mercator-hq/callisto/pkg/telemetry/tracing"
	"mercator-hq/callisto/pkg/upstream"
)

const tracerName = "mercator-hq/callisto/pkg/command"

// Invocation describes one handled request. It never carries credentials,
// query text or drill-down identifiers.
type Invocation struct {
	RequestID     string
	Command       string
	Mode          string
	Outcome       string
	ErrorType     string
	UpstreamCalls int
	Duration      time.Duration
	Time          time.Time
}

// Observer receives invocation metrics.
type Observer interface {
	ObserveInvocation(command, mode, outcome string, duration time.Duration)
}

// Recorder persists invocations.
type Recorder interface {
	RecordInvocation(ctx context.Context, inv Invocation)
}

// Handler serves one command over HTTP.
type Handler struct {
	cmd      Command
	spec     Spec
	logger   *slog.Logger
	observer Observer
	recorder Recorder
	enabled  func(name string) bool
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithObserver reports every invocation to obs.
func WithObserver(obs Observer) HandlerOption {
	return func(h *Handler) {
		h.observer = obs
	}
}

// WithRecorder records every invocation on rec.
func WithRecorder(rec Recorder) HandlerOption {
	return func(h *Handler) {
		h.recorder = rec
	}
}

// WithEnabled consults fn before serving; disabled commands answer 404.
func WithEnabled(fn func(name string) bool) HandlerOption {
	return func(h *Handler) {
		h.enabled = fn
	}
}

// NewHandler returns an http.Handler for cmd.
func NewHandler(cmd Command, opts ...HandlerOption) *Handler {
	h := &Handler{
		cmd:  cmd,
		spec: cmd.Spec(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	h.logger = h.logger.With("command", h.spec.Name)
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.enabled != nil && !h.enabled(h.spec.Name) {
		http.NotFound(w, r)
		return
	}

	SetHeaders(w.Header(), h.spec)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	req := Extract(r, h.spec)

	ctx, span := otel.Tracer(tracerName).Start(r.Context(), "command."+h.spec.Name,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String(tracing.AttrCommandName, h.spec.Name),
			attribute.String(tracing.AttrRequestID, logging.GetRequestID(r.Context())),
		),
	)
	defer span.End()
	ctx, calls := upstream.CountCalls(ctx)

	start := time.Now()
	result := Execute(ctx, h.cmd, req)
	duration := time.Since(start)

	outcome := result.Outcome()
	span.SetAttributes(
		attribute.String(tracing.AttrCommandMode, result.Mode.String()),
		attribute.String(tracing.AttrCommandOutcome, outcome),
		attribute.Int(tracing.AttrCommandUpstreamCalls, calls()),
	)
	tracing.SetError(span, result.Err, ErrorType(result.Err))

	h.log(ctx, result, outcome, calls(), duration)

	if h.observer != nil {
		h.observer.ObserveInvocation(h.spec.Name, result.Mode.String(), outcome, duration)
	}
	if h.recorder != nil {
		h.recorder.RecordInvocation(ctx, Invocation{
			RequestID:     logging.GetRequestID(ctx),
			Command:       h.spec.Name,
			Mode:          result.Mode.String(),
			Outcome:       outcome,
			ErrorType:     ErrorType(result.Err),
			UpstreamCalls: calls(),
			Duration:      duration,
			Time:          start.UTC(),
		})
	}

	WriteResponse(w, result.Response)
}

func (h *Handler) log(ctx context.Context, result Result, outcome string, calls int, duration time.Duration) {
	attrs := []any{
		"request_id", logging.GetRequestID(ctx),
		"mode", result.Mode.String(),
		"outcome", outcome,
		"upstream_calls", calls,
		"duration_ms", duration.Milliseconds(),
	}

	switch {
	case result.Stack != nil:
		h.logger.ErrorContext(ctx, "command panicked", append(attrs, "error", result.Err, "stack", string(result.Stack))...)
	case result.Err != nil:
		h.logger.WarnContext(ctx, "command failed", append(attrs, "error", result.Err, "error_type", ErrorType(result.Err))...)
	default:
		h.logger.DebugContext(ctx, "command completed", attrs...)
	}
}

// SetHeaders sets the response headers every command response carries.
func SetHeaders(h http.Header, spec Spec) {
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Headers", strings.Join(spec.ConfigHeaders, ", "))
	for key, value := range spec.ResponseHeaders {
		h.Set(key, value)
	}
}

// WriteResponse writes resp as JSON with status 200.
func WriteResponse(w http.ResponseWriter, resp *envelope.Response) {
	data, err := envelope.Marshal(resp)
	if err != nil {
		data, _ = envelope.Marshal(Generic())
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
