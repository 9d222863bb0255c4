package envelope

import (
	"errors"
	"reflect"
	"testing"

	json "github.com/goccy/go-json"
)

// assertJSON compares the encoding of v with want, ignoring key order.
func assertJSON(t *testing.T, v any, want string) {
	t.Helper()

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var got, expected any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal of output failed: %v", err)
	}
	if err := json.Unmarshal([]byte(want), &expected); err != nil {
		t.Fatalf("unmarshal of expected failed: %v", err)
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %s, got %s", want, data)
	}
}

func TestResponse_Marshal(t *testing.T) {
	tests := []struct {
		name string
		resp *Response
		want string
	}{
		{
			name: "message view",
			resp: Message("Oops! Sorry, something went wrong!"),
			want: `{"view":"Oops! Sorry, something went wrong!"}`,
		},
		{
			name: "message view with placeholder",
			resp: Message("Paste a User-Agent string in the input field above.").WithPlaceholder("Paste a User-Agent string"),
			want: `{"view":"Paste a User-Agent string in the input field above.","inputPlaceholder":"Paste a User-Agent string"}`,
		},
		{
			name: "toast",
			resp: Toast("Error: boom"),
			want: `{"action":{"type":"show-toast","message":"Error: boom"}}`,
		},
		{
			name: "empty list",
			resp: List(),
			want: `{"view":{"type":"list","options":[]}}`,
		},
		{
			name: "masonry without ranking",
			resp: Masonry(&Option{Title: "a", ImageURL: "https://img"}).WithRanking(false),
			want: `{"view":{"type":"masonry","ranking":false,"options":[{"title":"a","imageURL":"https://img"}]}}`,
		},
		{
			name: "list with tokens",
			resp: List(&Option{Title: "Open", Action: OpenURL("https://x")}).
				WithTokens(Token{ParamName: "repo", Label: "a/b", Icon: URL("https://icon")}),
			want: `{"view":{"type":"list","options":[{"title":"Open","action":{"type":"open-url","url":"https://x"}}]},"tokens":[{"paramName":"repo","label":"a/b","icon":"https://icon"}]}`,
		},
		{
			name: "config form with error",
			resp: ConfigForm("bad token", Row(Field{Type: FieldText, ID: "token", Label: "Token"})),
			want: `{"config":{"form":{"error":"bad token","fields":[{"type":"text","id":"token","label":"Token"}]}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertJSON(t, tt.resp, tt.want)
		})
	}
}

func TestFieldRow_Marshal(t *testing.T) {
	t.Run("single field row encodes as object", func(t *testing.T) {
		assertJSON(t, Row(Field{Type: FieldToggle, ID: "premium", Label: "Include Premium", DefaultValue: false}),
			`{"type":"toggle","id":"premium","label":"Include Premium","defaultValue":false}`)
	})

	t.Run("multi field row encodes as array", func(t *testing.T) {
		row := Row(
			Field{Type: FieldText, ID: "count", Label: "Count", Required: true, DefaultValue: "10"},
			Field{Type: FieldSelect, ID: "style", Label: "Style", DefaultValue: "", Options: []SelectOption{{Label: "Flat", Value: "flat"}}},
		)
		assertJSON(t, row, `[
			{"type":"text","id":"count","label":"Count","required":true,"defaultValue":"10"},
			{"type":"select","id":"style","label":"Style","defaultValue":"","options":[{"label":"Flat","value":"flat"}]}
		]`)
	})
}

func TestSubtitle_Marshal(t *testing.T) {
	assertJSON(t, Text("hello"), `"hello"`)
	assertJSON(t, Lines("a", "b"), `["a","b"]`)
	assertJSON(t, Lines(), `[]`)

	if got := Text("x").Strings(); !reflect.DeepEqual(got, []string{"x"}) {
		t.Errorf("expected [x], got %v", got)
	}
}

func TestIcon_Marshal(t *testing.T) {
	assertJSON(t, URL("https://example.com/favicon.ico"), `"https://example.com/favicon.ico"`)
	assertJSON(t, Mono("<svg/>"), `{"monochrome":"<svg/>"}`)
}

func TestAction_Marshal(t *testing.T) {
	tests := []struct {
		name   string
		action *Action
		want   string
	}{
		{"open url", OpenURL("https://a"), `{"type":"open-url","url":"https://a"}`},
		{"copy", Copy("npm i left-pad"), `{"type":"copy","value":"npm i left-pad"}`},
		{"paste", Paste("<svg/>"), `{"type":"paste","value":"<svg/>"}`},
		{
			"labeled",
			OpenURL("https://github.com/a/b").Labeled("Open", "Open on Github", Mono("<svg/>")),
			`{"label":"Open","tooltip":"Open on Github","icon":{"monochrome":"<svg/>"},"action":{"type":"open-url","url":"https://github.com/a/b"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertJSON(t, tt.action, tt.want)
		})
	}

	t.Run("labeled does not modify receiver", func(t *testing.T) {
		a := OpenURL("https://a")
		_ = a.Labeled("Open", "", nil)
		if a.Label != "" {
			t.Errorf("expected receiver label to stay empty, got %q", a.Label)
		}
	})
}

func TestMoveAction_Marshal(t *testing.T) {
	assertJSON(t, AddParam("package", "react"), `{"type":"add-param","name":"package","value":"react"}`)
}

func TestResponse_Validate(t *testing.T) {
	tests := []struct {
		name    string
		resp    *Response
		wantErr error
		kind    Kind
	}{
		{"config", ConfigForm(""), nil, KindConfig},
		{"list", List(), nil, KindView},
		{"message", Message("hi"), nil, KindMessage},
		{"action", Toast("hi"), nil, KindAction},
		{"empty", &Response{}, ErrNoVariant, KindInvalid},
		{"two variants", &Response{View: &View{Text: "x"}, Action: ShowToast("y")}, ErrMultipleVariants, KindInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.resp.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
			if got := tt.resp.Kind(); got != tt.kind {
				t.Errorf("expected kind %q, got %q", tt.kind, got)
			}
		})
	}
}

func TestResponse_WithRankingIgnoresMessage(t *testing.T) {
	resp := Message("hello").WithRanking(false)
	if resp.View.Ranking != nil {
		t.Error("expected ranking to stay unset on message view")
	}
}
