// Package upstreamtest provides a scripted HTTP server standing in for
// third-party APIs in tests.
package upstreamtest

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

// MockServer answers requests from a table of canned responses keyed by
// URL path. Unknown paths get a 404.
type MockServer struct {
	server    *httptest.Server
	responses map[string]MockResponse
	requests  []*http.Request
	mu        sync.Mutex
}

// MockResponse defines a canned response.
type MockResponse struct {
	StatusCode int
	// Body is written verbatim when it is a string or []byte and encoded
	// as JSON otherwise.
	Body    any
	Delay   time.Duration
	Headers map[string]string
}

// NewMockServer starts a mock server. Close it when done.
func NewMockServer() *MockServer {
	ms := &MockServer{
		responses: make(map[string]MockResponse),
	}
	ms.server = httptest.NewServer(http.HandlerFunc(ms.handler))
	return ms
}

// URL returns the server's base URL.
func (ms *MockServer) URL() string {
	return ms.server.URL
}

// Close shuts the server down.
func (ms *MockServer) Close() {
	ms.server.Close()
}

// SetResponse registers the response for a path.
func (ms *MockServer) SetResponse(path string, response MockResponse) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.responses[path] = response
}

// SetJSON registers a 200 JSON response for a path.
func (ms *MockServer) SetJSON(path string, body any) {
	ms.SetResponse(path, MockResponse{StatusCode: http.StatusOK, Body: body})
}

// SetStatus registers an empty response with the given status for a path.
func (ms *MockServer) SetStatus(path string, status int) {
	ms.SetResponse(path, MockResponse{StatusCode: status, Body: `{"message":"` + http.StatusText(status) + `"}`})
}

// GetRequestCount returns the number of requests received.
func (ms *MockServer) GetRequestCount() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	return len(ms.requests)
}

// Requests returns the requests received so far, oldest first.
func (ms *MockServer) Requests() []*http.Request {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	out := make([]*http.Request, len(ms.requests))
	copy(out, ms.requests)
	return out
}

// LastRequest returns the most recent request, or nil.
func (ms *MockServer) LastRequest() *http.Request {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if len(ms.requests) == 0 {
		return nil
	}
	return ms.requests[len(ms.requests)-1]
}

// RequestsTo returns the requests received for path.
func (ms *MockServer) RequestsTo(path string) []*http.Request {
	var out []*http.Request
	for _, r := range ms.Requests() {
		if r.URL.Path == path {
			out = append(out, r)
		}
	}
	return out
}

func (ms *MockServer) handler(w http.ResponseWriter, r *http.Request) {
	payload, _ := io.ReadAll(r.Body)
	recorded := r.Clone(r.Context())
	recorded.Body = io.NopCloser(bytes.NewReader(payload))

	ms.mu.Lock()
	ms.requests = append(ms.requests, recorded)
	response, ok := ms.responses[r.URL.Path]
	ms.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}

	if response.Delay > 0 {
		select {
		case <-time.After(response.Delay):
		case <-r.Context().Done():
			return
		}
	}

	for key, value := range response.Headers {
		w.Header().Set(key, value)
	}

	var body []byte
	switch v := response.Body.(type) {
	case nil:
	case string:
		body = []byte(v)
	case []byte:
		body = v
	default:
		data, err := json.Marshal(v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		body = data
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", "application/json")
		}
	}

	status := response.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
