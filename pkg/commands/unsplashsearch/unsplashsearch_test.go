package unsplashsearch

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"mercator-hq/callisto/internal/upstreamtest"
	"mercator-hq/callisto/pkg/command"
	"mercator-hq/callisto/pkg/envelope"
	"mercator-hq/callisto/pkg/upstream"
	"mercator-hq/callisto/pkg/upstream/unsplash"
)

func newTestCommand(t *testing.T, configured bool) (*Command, *upstreamtest.MockServer) {
	t.Helper()
	server := upstreamtest.NewMockServer()
	t.Cleanup(server.Close)
	client := unsplash.New(upstream.New(upstream.Config{Name: "unsplash", BaseURL: server.URL()}), "access-key")
	return New(client, configured), server
}

func photo(id string) map[string]any {
	return map[string]any{
		"id":          id,
		"description": "Green hills",
		"urls": map[string]string{
			"raw":   "https://images.unsplash.com/" + id + "?raw",
			"full":  "https://images.unsplash.com/" + id + "?full",
			"small": "https://images.unsplash.com/" + id + "?small",
		},
		"links": map[string]string{"html": "https://unsplash.com/photos/" + id},
		"user": map[string]any{
			"name":  "Jane Doe",
			"links": map[string]string{"html": "https://unsplash.com/@jane"},
		},
	}
}

func TestCommand_List(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantQuery string
	}{
		{name: "keywords", query: "mountains", wantQuery: "mountains"},
		{name: "empty input", query: "", wantQuery: DefaultQuery},
		{name: "blank input", query: "  ", wantQuery: DefaultQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, server := newTestCommand(t, true)
			server.SetJSON("/search/photos", map[string]any{"results": []any{photo("a1"), photo("b2")}})

			result := command.Execute(context.Background(), cmd, command.Request{Query: tt.query})
			if result.Err != nil {
				t.Fatalf("unexpected error: %v", result.Err)
			}

			req := server.LastRequest()
			if got := req.URL.Query().Get("query"); got != tt.wantQuery {
				t.Errorf("query = %q, want %q", got, tt.wantQuery)
			}
			if got := req.Header.Get("Authorization"); got != "Client-ID access-key" {
				t.Errorf("Authorization = %q", got)
			}

			resp := result.Response
			if resp.View.Type != envelope.ViewMasonry || len(resp.View.Options) != 2 {
				t.Fatalf("view = %+v", resp.View)
			}
			if resp.InputPlaceholder != Placeholder {
				t.Errorf("placeholder = %q", resp.InputPlaceholder)
			}
			opt := resp.View.Options[0]
			if opt.ImageURL != "https://images.unsplash.com/a1?small" || opt.Action.URL != "https://images.unsplash.com/a1?raw" {
				t.Errorf("option = %+v", opt)
			}
			if opt.MoveAction.Name != PhotoParam || opt.MoveAction.Value != "a1" {
				t.Errorf("move action = %+v", opt.MoveAction)
			}
		})
	}
}

func TestCommand_Detail(t *testing.T) {
	cmd, server := newTestCommand(t, true)
	server.SetJSON("/photos/a1", photo("a1"))

	result := command.Execute(context.Background(), cmd, command.Request{Params: map[string]string{PhotoParam: "a1"}})
	if result.Mode != command.DetailMode || result.Err != nil {
		t.Fatalf("mode = %v, err = %v", result.Mode, result.Err)
	}

	resp := result.Response
	if len(resp.Tokens) != 1 || resp.Tokens[0].Label != "Green hills" {
		t.Errorf("tokens = %+v", resp.Tokens)
	}
	var titles []string
	for _, opt := range resp.View.Options {
		titles = append(titles, opt.Title)
	}
	want := []string{"Open on Unsplash", "Open Full Size", "Copy Image URL", "Open Photographer Profile"}
	if strings.Join(titles, "|") != strings.Join(want, "|") {
		t.Errorf("titles = %v, want %v", titles, want)
	}
	if got := resp.View.Options[2].Action.Value; got != "https://images.unsplash.com/a1?full" {
		t.Errorf("copied url = %q", got)
	}
}

func TestCommand_NotConfigured(t *testing.T) {
	cmd, server := newTestCommand(t, false)

	for _, req := range []command.Request{
		{Query: "cats"},
		{Params: map[string]string{PhotoParam: "a1"}},
	} {
		result := command.Execute(context.Background(), cmd, req)
		action := result.Response.Action
		if action == nil || action.Message != "Error: "+ErrNoAccessKey.Error() {
			t.Errorf("response = %+v", result.Response)
		}
	}
	if server.GetRequestCount() != 0 {
		t.Error("unconfigured command must not call Unsplash")
	}
}

func TestCommand_UpstreamFailure(t *testing.T) {
	cmd, server := newTestCommand(t, true)
	server.SetStatus("/search/photos", http.StatusUnauthorized)

	result := command.Execute(context.Background(), cmd, command.Request{Query: "cats"})
	action := result.Response.Action
	if action == nil || action.Type != envelope.ActionShowToast || !strings.HasPrefix(action.Message, "Error: ") {
		t.Errorf("response = %+v", result.Response)
	}
}
