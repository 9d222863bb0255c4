package command

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"mercator-hq/callisto/pkg/envelope"
)

// KeywordsParam is the free-text query parameter.
const KeywordsParam = "keywords"

// Spec declares the inputs a command reads.
type Spec struct {
	Name string

	// ConfigHeaders are the configuration header names. They are echoed in
	// Access-Control-Allow-Headers on every response.
	ConfigHeaders []string

	// RequiredHeader must be present to leave NeedsConfig. Empty means the
	// command never asks for configuration.
	RequiredHeader string

	// DetailParam switches to DetailMode when present. Empty means the
	// command has no detail mode.
	DetailParam string

	// ResponseHeaders are set on every response.
	ResponseHeaders map[string]string
}

// Request is the per-invocation input. Absent values are empty strings.
type Request struct {
	Query   string
	Headers map[string]string
	Params  map[string]string
}

// Header returns a configuration header value.
func (r Request) Header(name string) string {
	return r.Headers[name]
}

// Param returns a query parameter value.
func (r Request) Param(name string) string {
	return r.Params[name]
}

// Extract reads the inputs declared by spec from r. It never fails.
func Extract(r *http.Request, spec Spec) Request {
	req := Request{
		Headers: make(map[string]string, len(spec.ConfigHeaders)),
		Params:  make(map[string]string, 1),
	}

	for _, name := range spec.ConfigHeaders {
		req.Headers[name] = r.Header.Get(name)
	}

	q := queryValues(r.URL.RawQuery)
	req.Query = q[KeywordsParam]
	if spec.DetailParam != "" {
		req.Params[spec.DetailParam] = q[spec.DetailParam]
	}
	return req
}

// queryValues parses a raw query string, keeping the first value of each
// key. Unlike url.ParseQuery it accepts unescaped semicolons, which
// User-Agent strings are full of. Pairs that fail to unescape are skipped.
func queryValues(raw string) map[string]string {
	values := make(map[string]string)
	for raw != "" {
		var pair string
		pair, raw, _ = strings.Cut(raw, "&")
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(key)
		if err != nil {
			continue
		}
		value, err = url.QueryUnescape(value)
		if err != nil {
			continue
		}
		if _, ok := values[key]; !ok {
			values[key] = value
		}
	}
	return values
}

// Mode is the dispatch branch selected for a request.
type Mode int

const (
	NeedsConfig Mode = iota
	ListMode
	DetailMode
)

func (m Mode) String() string {
	switch m {
	case NeedsConfig:
		return "config"
	case ListMode:
		return "list"
	case DetailMode:
		return "detail"
	default:
		return "unknown"
	}
}

// Classify selects the mode for req. It depends only on req.
func Classify(spec Spec, req Request) Mode {
	if spec.RequiredHeader != "" && req.Header(spec.RequiredHeader) == "" {
		return NeedsConfig
	}
	if spec.DetailParam != "" && req.Param(spec.DetailParam) != "" {
		return DetailMode
	}
	return ListMode
}

// Command adapts one third-party API to the envelope.
type Command interface {
	Spec() Spec

	// Configure renders the configuration form. formErr is shown on the
	// form when a previous attempt was rejected.
	Configure(ctx context.Context, req Request, formErr string) (*envelope.Response, error)

	// List renders the list view for req.Query.
	List(ctx context.Context, req Request) (*envelope.Response, error)

	// Detail renders the actions for the drill-down target.
	Detail(ctx context.Context, req Request) (*envelope.Response, error)

	// Fail maps an error returned by the methods above to an envelope.
	Fail(ctx context.Context, req Request, err error) *envelope.Response
}

// ErrUnsupported is returned by NoConfig and NoDetail. Classify never
// selects those modes for a correctly declared Spec.
var ErrUnsupported = errors.New("mode not supported by command")

// NoConfig can be embedded by commands without a configuration form.
type NoConfig struct{}

func (NoConfig) Configure(context.Context, Request, string) (*envelope.Response, error) {
	return nil, ErrUnsupported
}

// NoDetail can be embedded by commands without a detail mode.
type NoDetail struct{}

func (NoDetail) Detail(context.Context, Request) (*envelope.Response, error) {
	return nil, ErrUnsupported
}
