package iconfinder

import (
	"context"
	"net/http"
	"testing"

	"mercator-hq/callisto/internal/upstreamtest"
	"mercator-hq/callisto/pkg/upstream"
)

func newTestClient(t *testing.T) (*Client, *upstreamtest.MockServer) {
	t.Helper()
	server := upstreamtest.NewMockServer()
	t.Cleanup(server.Close)
	return New(upstream.New(upstream.Config{Name: "iconfinder", BaseURL: server.URL()}), "server-key"), server
}

func TestClient_Search(t *testing.T) {
	client, server := newTestClient(t)
	server.SetJSON("/icons/search", map[string]any{
		"icons": []map[string]any{{"icon_id": 7, "type": "raster", "tags": []string{"cat", "pet"}}},
	})

	icons, err := client.Search(context.Background(), SearchOptions{Query: "cat", Count: "10", Vector: "all", Premium: "0", Style: "flat"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(icons) != 1 || icons[0].Title() != "cat pet" {
		t.Fatalf("unexpected icons %+v", icons)
	}
	if got := icons[0].WebURL(); got != "https://www.iconfinder.com/icons/7/" {
		t.Errorf("unexpected web url %q", got)
	}

	req := server.LastRequest()
	q := req.URL.Query()
	if q.Get("query") != "cat" || q.Get("count") != "10" || q.Get("vector") != "all" || q.Get("premium") != "0" || q.Get("style") != "flat" {
		t.Errorf("unexpected query %v", q)
	}
	if got := req.Header.Get("Authorization"); got != "Bearer server-key" {
		t.Errorf("expected server key, got %q", got)
	}
}

func TestClient_SVG(t *testing.T) {
	client, server := newTestClient(t)
	server.SetResponse("/download/good.svg", upstreamtest.MockResponse{StatusCode: http.StatusOK, Body: `<svg xmlns="http://www.w3.org/2000/svg"/>`})
	server.SetResponse("/download/bad.svg", upstreamtest.MockResponse{StatusCode: http.StatusOK, Body: `{"error":"premium"}`})

	vector := func(path string) Icon {
		return Icon{ID: 1, Type: "vector", VectorSizes: []VectorSize{
			{Size: 24, Formats: []Format{{DownloadURL: "/download/small.svg"}}},
			{Size: 512, Formats: []Format{{DownloadURL: path}}},
		}}
	}

	tests := []struct {
		name string
		icon Icon
		want string
	}{
		{"largest vector rendition", vector("/download/good.svg"), `<svg xmlns="http://www.w3.org/2000/svg"/>`},
		{"non svg body", vector("/download/bad.svg"), ""},
		{"raster icon", Icon{ID: 2, Type: "raster"}, ""},
		{"vector without sizes", Icon{ID: 3, Type: "vector"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := client.SVG(context.Background(), tt.icon)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}

	if n := len(server.RequestsTo("/download/small.svg")); n != 0 {
		t.Errorf("expected smaller renditions to be skipped, got %d requests", n)
	}
}

func TestPreviewURL(t *testing.T) {
	icon := Icon{RasterSizes: []RasterSize{
		{Size: 16, Formats: []Format{{PreviewURL: "https://cdn/16.png"}}},
		{Size: 128, Formats: []Format{{PreviewURL: "https://cdn/128.png"}}},
	}}
	if got := PreviewURL(icon); got != "https://cdn/128.png" {
		t.Errorf("expected largest preview, got %q", got)
	}
	if got := PreviewURL(Icon{}); got != "" {
		t.Errorf("expected empty preview, got %q", got)
	}
}

func TestClient_Styles(t *testing.T) {
	client, server := newTestClient(t)
	server.SetJSON("/styles", map[string]any{
		"styles": []map[string]string{{"identifier": "flat", "name": "Flat"}},
	})

	styles, err := client.Styles(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(styles) != 1 || styles[0].Identifier != "flat" {
		t.Errorf("unexpected styles %+v", styles)
	}
}
