package honeycomb

import (
	"context"
	"net/http"
	"reflect"
	"testing"

	"mercator-hq/callisto/internal/upstreamtest"
	"mercator-hq/callisto/pkg/upstream"
)

func TestClient_Boards(t *testing.T) {
	server := upstreamtest.NewMockServer()
	defer server.Close()
	server.SetJSON("/1/boards", []map[string]any{
		{"id": "b1", "name": "Latency", "description": "p99 by endpoint"},
		{"id": "b2", "name": "Errors", "queries": []map[string]any{{"caption": "5xx"}, {"caption": ""}, {"caption": "panics"}}},
	})

	client := New(upstream.New(upstream.Config{Name: "honeycomb", BaseURL: server.URL()}))
	boards, err := client.Boards(context.Background(), "team-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(boards) != 2 {
		t.Fatalf("expected 2 boards, got %d", len(boards))
	}
	if got := boards[1].Captions(); !reflect.DeepEqual(got, []string{"5xx", "panics"}) {
		t.Errorf("unexpected captions %v", got)
	}
	if got := server.LastRequest().Header.Get("X-Honeycomb-Team"); got != "team-key" {
		t.Errorf("expected team header, got %q", got)
	}
}

func TestClient_BoardsForbidden(t *testing.T) {
	server := upstreamtest.NewMockServer()
	defer server.Close()
	server.SetStatus("/1/boards", http.StatusForbidden)

	client := New(upstream.New(upstream.Config{Name: "honeycomb", BaseURL: server.URL()}))
	if _, err := client.Boards(context.Background(), "bad"); !upstream.IsAuth(err) {
		t.Errorf("expected auth error, got %v", err)
	}
}
