package upstream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

const maxBody = 10 << 20

// Config describes one upstream service.
type Config struct {
	// Name identifies the service in errors, logs and metrics.
	Name string

	// BaseURL is prefixed to relative request paths.
	BaseURL string

	// Timeout bounds a whole request. Zero leaves it to the transport.
	Timeout time.Duration

	// UserAgent is sent on every request when set.
	UserAgent string

	// PropagateTrace sends the W3C trace context headers upstream. Leave it
	// off for third-party APIs so internal trace IDs stay internal.
	PropagateTrace bool

	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
}

// Client performs single-attempt requests against one upstream service.
type Client struct {
	config Config
	client *http.Client
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	observer Observer
	base     http.RoundTripper
}

// WithObserver records every round trip on obs.
func WithObserver(obs Observer) Option {
	return func(o *clientOptions) {
		o.observer = obs
	}
}

// WithTransport replaces the pooled base transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *clientOptions) {
		o.base = rt
	}
}

// New creates a client with its own connection pool.
func New(config Config, opts ...Option) *Client {
	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}

	base := o.base
	if base == nil {
		base = &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        config.MaxIdleConns,
			MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
			IdleConnTimeout:     config.IdleConnTimeout,
			ForceAttemptHTTP2:   true,
		}
	}

	return &Client{
		config: config,
		client: &http.Client{
			Transport: newInstrumentedTransport(config.Name, base, o.observer, config.PropagateTrace),
			Timeout:   config.Timeout,
		},
	}
}

// Name returns the service name.
func (c *Client) Name() string {
	return c.config.Name
}

// HTTPClient returns the instrumented client for SDKs that take one.
func (c *Client) HTTPClient() *http.Client {
	return c.client
}

// URL resolves path against the base URL. Absolute URLs are returned as is.
func (c *Client) URL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(c.config.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// Do sends one request. Non-2xx statuses are returned as errors and the
// response body is closed; on success the caller owns resp.Body.
func (c *Client) Do(ctx context.Context, method, path string, body []byte, headers map[string]string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	url := c.URL(path)
	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}
	if req.Header.Get("Content-Type") == "" && body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.config.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	slog.Debug("sending request to upstream",
		"service", c.config.Name,
		"method", method,
		"path", req.URL.Path,
	)

	resp, err := c.client.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, &TimeoutError{Service: c.config.Name, Timeout: c.config.Timeout, Cause: err}
		}
		return nil, err
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody*4))
	resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, &AuthError{
			Service:    c.config.Name,
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(errorBody)),
		}
	default:
		return nil, &StatusError{
			Service:    c.config.Name,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(errorBody)),
		}
	}
}

// GetJSON issues a GET and decodes the JSON response into out.
func (c *Client) GetJSON(ctx context.Context, path string, headers map[string]string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, headers, out)
}

// PostJSON encodes in as the request body and decodes the response into out.
func (c *Client) PostJSON(ctx context.Context, path string, in any, headers map[string]string, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}
	return c.doJSON(ctx, http.MethodPost, path, body, headers, out)
}

// GetText issues a GET and returns the response body as a string.
func (c *Client) GetText(ctx context.Context, path string, headers map[string]string) (string, error) {
	resp, err := c.Do(ctx, http.MethodGet, path, nil, headers)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		if isTimeout(ctx, err) {
			return "", &TimeoutError{Service: c.config.Name, Timeout: c.config.Timeout, Cause: err}
		}
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	return string(data), nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body []byte, headers map[string]string, out any) error {
	if headers == nil {
		headers = map[string]string{}
	}
	if _, ok := headers["Accept"]; !ok {
		headers["Accept"] = "application/json"
	}

	resp, err := c.Do(ctx, method, path, body, headers)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		if isTimeout(ctx, err) {
			return &TimeoutError{Service: c.config.Name, Timeout: c.config.Timeout, Cause: err}
		}
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &ParseError{
			Service:     c.config.Name,
			RawResponse: truncate(string(data), maxErrorBody),
			Cause:       err,
		}
	}
	return nil
}

// Bearer returns an Authorization header carrying token.
func Bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
