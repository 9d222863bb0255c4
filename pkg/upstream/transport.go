package upstream

import (
	"context"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"mercator-hq/callisto/pkg/telemetry/tracing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "mercator-hq/callisto/pkg/upstream"

// Observer receives one call per upstream round trip. status is 0 when no
// response was received.
type Observer interface {
	ObserveUpstream(service string, status int, latency time.Duration, err error)
}

type callCounterKey struct{}

// CountCalls returns a context that counts upstream round trips made with
// it, and a function reporting the count so far.
func CountCalls(ctx context.Context) (context.Context, func() int) {
	counter := new(atomic.Int64)
	return context.WithValue(ctx, callCounterKey{}, counter), func() int {
		return int(counter.Load())
	}
}

type instrumentedTransport struct {
	service   string
	base      http.RoundTripper
	observer  Observer
	propagate bool
}

func newInstrumentedTransport(service string, base http.RoundTripper, observer Observer, propagate bool) *instrumentedTransport {
	return &instrumentedTransport{service: service, base: base, observer: observer, propagate: propagate}
}

func (t *instrumentedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx, span := otel.Tracer(tracerName).Start(req.Context(), "upstream."+t.service,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(tracing.AttrUpstreamService, t.service),
			attribute.String(tracing.AttrHTTPMethod, req.Method),
			attribute.String(tracing.AttrHTTPHost, req.URL.Host),
			attribute.String(tracing.AttrHTTPPath, req.URL.Path),
		),
	)
	defer span.End()

	if counter, ok := ctx.Value(callCounterKey{}).(*atomic.Int64); ok {
		counter.Add(1)
	}

	// RoundTrip must not modify the caller's request.
	out := req.Clone(ctx)
	if t.propagate {
		tracing.Inject(ctx, out.Header)
	}

	start := time.Now()
	resp, err := t.base.RoundTrip(out)
	latency := time.Since(start)

	status := 0
	if resp != nil {
		status = resp.StatusCode
		span.SetAttributes(attribute.Int(tracing.AttrHTTPStatusCode, status))
	}
	switch {
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	case status >= 400:
		span.SetStatus(codes.Error, "status "+strconv.Itoa(status))
	}

	if t.observer != nil {
		t.observer.ObserveUpstream(t.service, status, latency, err)
	}
	return resp, err
}
