package envelope

import json "github.com/goccy/go-json"

// Option is one entry of a list or masonry view.
type Option struct {
	Title      string      `json:"title,omitempty"`
	Subtitle   *Subtitle   `json:"subtitle,omitempty"`
	Icon       *Icon       `json:"icon,omitempty"`
	Action     *Action     `json:"action,omitempty"`
	MoveAction *MoveAction `json:"moveAction,omitempty"`
	Group      string      `json:"group,omitempty"`
	ImageURL   string      `json:"imageURL,omitempty"`
}

// Subtitle is rendered under an option title. It encodes either as a single
// string or as an ordered list of strings.
type Subtitle struct {
	text  string
	lines []string
	multi bool
}

// Text returns a single-string subtitle.
func Text(s string) *Subtitle {
	return &Subtitle{text: s}
}

// Lines returns a subtitle made of ordered segments.
func Lines(lines ...string) *Subtitle {
	if lines == nil {
		lines = []string{}
	}
	return &Subtitle{lines: lines, multi: true}
}

// Strings returns the subtitle segments.
func (s Subtitle) Strings() []string {
	if s.multi {
		return s.lines
	}
	return []string{s.text}
}

func (s Subtitle) MarshalJSON() ([]byte, error) {
	if s.multi {
		return json.Marshal(s.lines)
	}
	return json.Marshal(s.text)
}

// Icon is an image URL, an inline SVG, or an SVG the launcher may recolor.
type Icon struct {
	Source     string
	Monochrome bool
}

// URL returns an icon loaded from an image URL.
func URL(u string) *Icon {
	return &Icon{Source: u}
}

// SVG returns a fixed-color inline SVG icon.
func SVG(svg string) *Icon {
	return &Icon{Source: svg}
}

// Mono returns a monochrome inline SVG icon.
func Mono(svg string) *Icon {
	return &Icon{Source: svg, Monochrome: true}
}

func (i Icon) MarshalJSON() ([]byte, error) {
	if i.Monochrome {
		return json.Marshal(struct {
			Monochrome string `json:"monochrome"`
		}{i.Source})
	}
	return json.Marshal(i.Source)
}

// ActionType identifies what the launcher does when an action fires.
type ActionType string

const (
	ActionOpenURL   ActionType = "open-url"
	ActionCopy      ActionType = "copy"
	ActionPaste     ActionType = "paste"
	ActionShowToast ActionType = "show-toast"
)

// Action is a primary option action or a response-level action.
//
// When Label is set the action is encoded in its labelled form:
//
//	{"label": "Open", "tooltip": "...", "icon": ..., "action": {"type": "open-url", ...}}
type Action struct {
	Type    ActionType
	URL     string
	Value   string
	Message string

	Label   string
	Tooltip string
	Icon    *Icon
}

// OpenURL opens u in the browser.
func OpenURL(u string) *Action {
	return &Action{Type: ActionOpenURL, URL: u}
}

// Copy copies value to the clipboard.
func Copy(value string) *Action {
	return &Action{Type: ActionCopy, Value: value}
}

// Paste pastes value into the frontmost application.
func Paste(value string) *Action {
	return &Action{Type: ActionPaste, Value: value}
}

// ShowToast shows a transient message.
func ShowToast(message string) *Action {
	return &Action{Type: ActionShowToast, Message: message}
}

// Labeled returns a copy of a carrying a button label, tooltip and icon.
func (a *Action) Labeled(label, tooltip string, icon *Icon) *Action {
	c := *a
	c.Label = label
	c.Tooltip = tooltip
	c.Icon = icon
	return &c
}

func (a Action) payload() map[string]string {
	p := map[string]string{"type": string(a.Type)}
	switch a.Type {
	case ActionOpenURL:
		p["url"] = a.URL
	case ActionCopy, ActionPaste:
		p["value"] = a.Value
	case ActionShowToast:
		p["message"] = a.Message
	}
	return p
}

func (a Action) MarshalJSON() ([]byte, error) {
	if a.Label == "" {
		return json.Marshal(a.payload())
	}
	return json.Marshal(struct {
		Label   string            `json:"label"`
		Tooltip string            `json:"tooltip,omitempty"`
		Icon    *Icon             `json:"icon,omitempty"`
		Action  map[string]string `json:"action"`
	}{a.Label, a.Tooltip, a.Icon, a.payload()})
}

// MoveAction re-invokes the command with an extra query parameter.
type MoveAction struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// AddParam returns a move action that appends name=value to the request.
func AddParam(name, value string) *MoveAction {
	return &MoveAction{Type: "add-param", Name: name, Value: value}
}

// Token is a breadcrumb naming the active drill-down target.
type Token struct {
	ParamName string `json:"paramName"`
	Label     string `json:"label"`
	Icon      *Icon  `json:"icon,omitempty"`
}
