package iconfinder

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"mercator-hq/callisto/internal/upstreamtest"
	"mercator-hq/callisto/pkg/command"
	"mercator-hq/callisto/pkg/envelope"
	"mercator-hq/callisto/pkg/upstream"
	api "mercator-hq/callisto/pkg/upstream/iconfinder"
)

const (
	monoSVG  = `<svg xmlns="http://www.w3.org/2000/svg"><path fill="#000" d="M0 0h1v1z"/></svg>`
	colorSVG = `<svg xmlns="http://www.w3.org/2000/svg"><path fill="#f00"/><path style="fill:#00f"/></svg>`
)

func newTestCommand(t *testing.T) (*Command, *upstreamtest.MockServer) {
	t.Helper()
	server := upstreamtest.NewMockServer()
	t.Cleanup(server.Close)
	client := api.New(upstream.New(upstream.Config{Name: "iconfinder", BaseURL: server.URL()}), "server-key")
	return New(client), server
}

func configured(query string, params map[string]string) command.Request {
	return command.Request{
		Query: query,
		Headers: map[string]string{
			CountHeader:   "5",
			PremiumHeader: "true",
			TypeHeader:    "1",
			StyleHeader:   "flat",
		},
		Params: params,
	}
}

func vectorIcon(id int, download string) map[string]any {
	return map[string]any{
		"icon_id":    id,
		"type":       "vector",
		"is_premium": false,
		"tags":       []string{"cat", "pet"},
		"vector_sizes": []map[string]any{
			{"size": 512, "formats": []map[string]string{{"format": "svg", "download_url": download}}},
		},
		"raster_sizes": []map[string]any{
			{"size": 128, "formats": []map[string]string{{"format": "png", "preview_url": "https://cdn.example/128.png"}}},
		},
	}
}

func TestCommand_Configure(t *testing.T) {
	cmd, server := newTestCommand(t)
	server.SetJSON("/styles", map[string]any{
		"styles": []map[string]string{{"identifier": "flat", "name": "Flat"}, {"identifier": "glyph", "name": "Glyph"}},
	})

	result := command.Execute(context.Background(), cmd, command.Request{})
	if result.Mode != command.NeedsConfig || result.Err != nil {
		t.Fatalf("mode = %v, err = %v", result.Mode, result.Err)
	}

	rows := result.Response.Config.Form.Fields
	if len(rows) != 2 || len(rows[0]) != 2 || len(rows[1]) != 2 {
		t.Fatalf("unexpected layout %+v", rows)
	}
	if rows[0][0].ID != CountHeader || !rows[0][0].Required || rows[0][0].DefaultValue != DefaultCount {
		t.Errorf("count field = %+v", rows[0][0])
	}
	if rows[0][1].Type != envelope.FieldToggle || rows[0][1].DefaultValue != false {
		t.Errorf("premium field = %+v", rows[0][1])
	}
	if len(rows[1][0].Options) != 3 {
		t.Errorf("type options = %+v", rows[1][0].Options)
	}
	style := rows[1][1]
	if len(style.Options) != 2 || style.Options[1].Label != "Glyph" || style.Options[1].Value != "glyph" {
		t.Errorf("style options = %+v", style.Options)
	}

	data, err := envelope.Marshal(result.Response)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"defaultValue":""`) {
		t.Errorf("empty style default must be serialized: %s", data)
	}
}

func TestCommand_ConfigureStylesFailure(t *testing.T) {
	cmd, server := newTestCommand(t)
	server.SetStatus("/styles", http.StatusUnauthorized)

	result := command.Execute(context.Background(), cmd, command.Request{})
	action := result.Response.Action
	if action == nil || action.Type != envelope.ActionShowToast || !strings.HasPrefix(action.Message, "Error: ") {
		t.Errorf("response = %+v", result.Response)
	}
}

func TestCommand_List(t *testing.T) {
	cmd, server := newTestCommand(t)
	server.SetJSON("/icons/search", map[string]any{
		"icons": []map[string]any{
			vectorIcon(1, "/download/mono.svg"),
			vectorIcon(2, "/download/color.svg"),
			{
				"icon_id":    3,
				"type":       "raster",
				"is_premium": true,
				"tags":       []string{"dog"},
				"raster_sizes": []map[string]any{
					{"size": 128, "formats": []map[string]string{{"preview_url": "https://cdn.example/dog.png"}}},
				},
			},
		},
	})
	server.SetResponse("/download/mono.svg", upstreamtest.MockResponse{Body: monoSVG})
	server.SetResponse("/download/color.svg", upstreamtest.MockResponse{Body: colorSVG})

	result := command.Execute(context.Background(), cmd, configured("cat", nil))
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}

	q := server.RequestsTo("/icons/search")[0].URL.Query()
	if q.Get("query") != "cat" || q.Get("count") != "5" || q.Get("premium") != "all" || q.Get("vector") != "1" || q.Get("style") != "flat" {
		t.Errorf("search query = %v", q)
	}

	view := result.Response.View
	if view.Ranking == nil || *view.Ranking {
		t.Error("ranking must be disabled")
	}
	if len(view.Options) != 3 {
		t.Fatalf("got %d options", len(view.Options))
	}

	mono, color, raster := view.Options[0], view.Options[1], view.Options[2]
	if mono.Title != "cat pet" || strings.Join(mono.Subtitle.Strings(), "|") != "vector|Free" {
		t.Errorf("mono option = %+v", mono)
	}
	if !mono.Icon.Monochrome || mono.Icon.Source != monoSVG {
		t.Errorf("mono icon = %+v", mono.Icon)
	}
	if mono.Action.Type != envelope.ActionPaste || mono.Action.Value != monoSVG {
		t.Errorf("mono action = %+v", mono.Action)
	}
	if color.Icon.Monochrome {
		t.Error("two-color svg must not be monochrome")
	}
	if raster.Icon.Source != "https://cdn.example/dog.png" {
		t.Errorf("raster icon = %+v", raster.Icon)
	}
	if raster.Action.Type != envelope.ActionOpenURL || raster.Action.URL != "https://www.iconfinder.com/icons/3/" {
		t.Errorf("raster action = %+v", raster.Action)
	}
	if got := raster.Subtitle.Strings()[1]; got != "Premium" {
		t.Errorf("raster license = %q", got)
	}
	if raster.MoveAction.Name != IDParam || raster.MoveAction.Value != "3" {
		t.Errorf("move action = %+v", raster.MoveAction)
	}
}

func TestCommand_ListEmptyQuery(t *testing.T) {
	cmd, server := newTestCommand(t)
	server.SetStatus("/icons/search", http.StatusBadRequest)

	for _, query := range []string{"", "  "} {
		result := command.Execute(context.Background(), cmd, configured(query, nil))
		if result.Err != nil {
			t.Fatalf("unexpected error: %v", result.Err)
		}
		resp := result.Response
		if resp.Kind() != envelope.KindView || resp.View.Type != envelope.ViewList || len(resp.View.Options) != 0 {
			t.Errorf("response = %+v", resp)
		}
		data, _ := envelope.Marshal(resp)
		if !strings.Contains(string(data), `"options":[]`) {
			t.Errorf("encoded = %s", data)
		}
	}
	if server.GetRequestCount() != 0 {
		t.Errorf("requests = %d, empty query must not call iconfinder", server.GetRequestCount())
	}
}

func TestCommand_ListPremiumOff(t *testing.T) {
	cmd, server := newTestCommand(t)
	server.SetJSON("/icons/search", map[string]any{"icons": []any{}})

	req := configured("cat", nil)
	req.Headers[PremiumHeader] = "false"
	command.Execute(context.Background(), cmd, req)

	if got := server.LastRequest().URL.Query().Get("premium"); got != "0" {
		t.Errorf("premium = %q", got)
	}
}

func TestCommand_Detail(t *testing.T) {
	tests := []struct {
		name     string
		download upstreamtest.MockResponse
		titles   []string
	}{
		{
			name:     "vector icon",
			download: upstreamtest.MockResponse{Body: monoSVG},
			titles:   []string{"Open in Iconfinder", "Copy URL", "Copy SVG", "Paste SVG"},
		},
		{
			name:     "download is not svg",
			download: upstreamtest.MockResponse{Body: `{"code":"premium"}`},
			titles:   []string{"Open in Iconfinder", "Copy URL"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, server := newTestCommand(t)
			server.SetJSON("/icons/1", vectorIcon(1, "/download/one.svg"))
			server.SetResponse("/download/one.svg", tt.download)

			result := command.Execute(context.Background(), cmd, configured("", map[string]string{IDParam: "1"}))
			if result.Mode != command.DetailMode || result.Err != nil {
				t.Fatalf("mode = %v, err = %v", result.Mode, result.Err)
			}

			resp := result.Response
			if len(resp.Tokens) != 1 || resp.Tokens[0].Label != "cat pet" || resp.Tokens[0].Icon == nil {
				t.Errorf("tokens = %+v", resp.Tokens)
			}
			var titles []string
			for _, opt := range resp.View.Options {
				titles = append(titles, opt.Title)
			}
			if strings.Join(titles, "|") != strings.Join(tt.titles, "|") {
				t.Errorf("titles = %v, want %v", titles, tt.titles)
			}
			if got := len(server.RequestsTo("/download/one.svg")); got != 1 {
				t.Errorf("svg fetched %d times", got)
			}
		})
	}
}

func TestCommand_SearchFailure(t *testing.T) {
	cmd, server := newTestCommand(t)
	server.SetStatus("/icons/search", http.StatusInternalServerError)

	result := command.Execute(context.Background(), cmd, configured("cat", nil))
	action := result.Response.Action
	if action == nil || !strings.HasPrefix(action.Message, "Error: ") {
		t.Errorf("response = %+v", result.Response)
	}
}
