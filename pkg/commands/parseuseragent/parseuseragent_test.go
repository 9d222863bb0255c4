package parseuseragent

import (
	"context"
	"strings"
	"testing"

	"mercator-hq/callisto/pkg/command"
	"mercator-hq/callisto/pkg/envelope"
)

func TestCommand_List(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		want     string
		contains []string
	}{
		{name: "no input", query: "", want: EmptyMessage},
		{name: "whitespace", query: "   ", want: EmptyMessage},
		{name: "not a user agent", query: "hello world", want: InvalidMessage},
		{
			name:     "desktop chrome",
			query:    "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			contains: []string{"OS: Windows", "Browser: Chrome 120", "CPU Architecture: amd64"},
		},
		{
			name:     "iphone safari",
			query:    "Mozilla/5.0 (iPhone; CPU iPhone OS 17_1 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Mobile/15E148 Safari/604.1",
			contains: []string{"OS: iOS", "Browser: Safari", "Device: Apple iPhone mobile"},
		},
	}

	cmd := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := command.Execute(context.Background(), cmd, command.Request{Query: tt.query})
			if result.Err != nil {
				t.Fatalf("unexpected error: %v", result.Err)
			}

			resp := result.Response
			if resp.Kind() != envelope.KindMessage {
				t.Fatalf("kind = %v", resp.Kind())
			}
			if resp.InputPlaceholder != Placeholder {
				t.Errorf("placeholder = %q", resp.InputPlaceholder)
			}
			if tt.want != "" && resp.View.Text != tt.want {
				t.Errorf("text = %q, want %q", resp.View.Text, tt.want)
			}
			for _, part := range tt.contains {
				if !strings.Contains(resp.View.Text, part) {
					t.Errorf("text %q missing %q", resp.View.Text, part)
				}
			}
		})
	}
}

func TestCommand_SpecHasNoModes(t *testing.T) {
	spec := New().Spec()
	if spec.RequiredHeader != "" || spec.DetailParam != "" || len(spec.ConfigHeaders) != 0 {
		t.Errorf("spec = %+v", spec)
	}
	req := command.Request{Params: map[string]string{"id": "1"}, Headers: map[string]string{}}
	if mode := command.Classify(spec, req); mode != command.ListMode {
		t.Errorf("mode = %v", mode)
	}
}
