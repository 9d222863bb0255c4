package commands

import (
	"context"
	"net/http"
	"reflect"
	"testing"

	"mercator-hq/callisto/internal/upstreamtest"
	"mercator-hq/callisto/pkg/command"
	"mercator-hq/callisto/pkg/commands/searchnpm"
	"mercator-hq/callisto/pkg/config"
	"mercator-hq/callisto/pkg/envelope"
)

func TestNewRegistry(t *testing.T) {
	reg, err := NewRegistry(config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := reg.Names(); !reflect.DeepEqual(got, Names) {
		t.Errorf("expected %v, got %v", Names, got)
	}

	t.Run("nil config", func(t *testing.T) {
		if _, err := NewRegistry(nil); err == nil {
			t.Error("expected error for nil config")
		}
	})
}

func TestNewClient(t *testing.T) {
	server := upstreamtest.NewMockServer()
	defer server.Close()
	server.SetJSON("/ping", map[string]string{"ok": "yes"})

	cfg := config.Default()
	cfg.Upstreams["npms"] = config.UpstreamConfig{BaseURL: server.URL()}

	client := NewClient(cfg, "npms")
	if client.Name() != "npms" {
		t.Errorf("expected name npms, got %q", client.Name())
	}

	var out map[string]string
	if err := client.GetJSON(context.Background(), "/ping", nil, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ua := server.LastRequest().Header.Get("User-Agent"); ua != UserAgent {
		t.Errorf("expected user agent %q, got %q", UserAgent, ua)
	}

	t.Run("falls back to the public endpoint", func(t *testing.T) {
		empty := &config.Config{}
		got := NewClient(empty, "github").URL("/user")
		if got != "https://api.github.com/user" {
			t.Errorf("unexpected URL %q", got)
		}
	})
}

func TestBuild_WiresConfiguredUpstream(t *testing.T) {
	server := upstreamtest.NewMockServer()
	defer server.Close()
	server.SetStatus("/search", http.StatusInternalServerError)

	cfg := config.Default()
	cfg.Upstreams["npms"] = config.UpstreamConfig{BaseURL: server.URL()}

	reg, err := NewRegistry(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cmd, ok := reg.Lookup(searchnpm.Name)
	if !ok {
		t.Fatal("expected search-npm to be registered")
	}

	result := command.Execute(context.Background(), cmd, command.Request{Query: "chi"})
	resp := result.Response
	if resp.Kind() != envelope.KindMessage || resp.View.Text != command.GenericMessage {
		t.Fatalf("expected the generic message, got %+v", resp)
	}
	if server.GetRequestCount() != 1 {
		t.Errorf("expected one upstream request, got %d", server.GetRequestCount())
	}
}
