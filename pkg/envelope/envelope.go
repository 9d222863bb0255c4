package envelope

import (
	"errors"

	json "github.com/goccy/go-json"
)

// Errors returned by Response.Validate.
var (
	ErrNoVariant        = errors.New("envelope: no variant set")
	ErrMultipleVariants = errors.New("envelope: more than one variant set")
)

// ViewType is the layout of an option view.
type ViewType string

const (
	ViewList    ViewType = "list"
	ViewMasonry ViewType = "masonry"
)

// Kind names the populated variant of a Response.
type Kind string

const (
	KindConfig  Kind = "config"
	KindView    Kind = "view"
	KindMessage Kind = "message"
	KindAction  Kind = "action"
	KindInvalid Kind = "invalid"
)

// Response is the envelope written for every command invocation.
// Exactly one of Config, View or Action is set.
type Response struct {
	Config           *Config `json:"config,omitempty"`
	View             *View   `json:"view,omitempty"`
	Action           *Action `json:"action,omitempty"`
	InputPlaceholder string  `json:"inputPlaceholder,omitempty"`
	Tokens           []Token `json:"tokens,omitempty"`
}

// Config asks the launcher to render a configuration form.
type Config struct {
	Form Form `json:"form"`
}

// Form is a configuration form. Error is shown above the fields.
type Form struct {
	Error  string     `json:"error,omitempty"`
	Fields []FieldRow `json:"fields"`
}

// View is either an option view (list or masonry) or a plain text message.
type View struct {
	Type    ViewType
	Ranking *bool
	Options []*Option

	// Text is the message shown when Type is empty.
	Text string
}

// IsMessage reports whether the view is a plain text message.
func (v View) IsMessage() bool {
	return v.Type == ""
}

// MarshalJSON encodes message views as a bare string.
func (v View) MarshalJSON() ([]byte, error) {
	if v.IsMessage() {
		return json.Marshal(v.Text)
	}
	options := v.Options
	if options == nil {
		options = []*Option{}
	}
	return json.Marshal(struct {
		Type    ViewType  `json:"type"`
		Ranking *bool     `json:"ranking,omitempty"`
		Options []*Option `json:"options"`
	}{v.Type, v.Ranking, options})
}

// List returns a list view response.
func List(options ...*Option) *Response {
	return &Response{View: &View{Type: ViewList, Options: options}}
}

// Masonry returns a masonry (image grid) view response.
func Masonry(options ...*Option) *Response {
	return &Response{View: &View{Type: ViewMasonry, Options: options}}
}

// Message returns a plain text view response.
func Message(text string) *Response {
	return &Response{View: &View{Text: text}}
}

// Toast returns a show-toast action response.
func Toast(message string) *Response {
	return &Response{Action: ShowToast(message)}
}

// ConfigForm returns a configuration form response. errMsg may be empty.
func ConfigForm(errMsg string, rows ...FieldRow) *Response {
	if rows == nil {
		rows = []FieldRow{}
	}
	return &Response{Config: &Config{Form: Form{Error: errMsg, Fields: rows}}}
}

// WithPlaceholder sets the search input placeholder.
func (r *Response) WithPlaceholder(placeholder string) *Response {
	r.InputPlaceholder = placeholder
	return r
}

// WithTokens sets the breadcrumb tokens.
func (r *Response) WithTokens(tokens ...Token) *Response {
	r.Tokens = tokens
	return r
}

// WithRanking controls whether the launcher re-ranks options against the
// input. It has no effect on message views.
func (r *Response) WithRanking(ranking bool) *Response {
	if r.View != nil && !r.View.IsMessage() {
		r.View.Ranking = &ranking
	}
	return r
}

// Kind returns the populated variant.
func (r *Response) Kind() Kind {
	if r.Validate() != nil {
		return KindInvalid
	}
	switch {
	case r.Config != nil:
		return KindConfig
	case r.Action != nil:
		return KindAction
	case r.View.IsMessage():
		return KindMessage
	default:
		return KindView
	}
}

// Validate checks that exactly one variant is populated.
func (r *Response) Validate() error {
	n := 0
	if r.Config != nil {
		n++
	}
	if r.View != nil {
		n++
	}
	if r.Action != nil {
		n++
	}
	switch n {
	case 0:
		return ErrNoVariant
	case 1:
		return nil
	default:
		return ErrMultipleVariants
	}
}

// Marshal encodes the response.
func Marshal(r *Response) ([]byte, error) {
	return json.Marshal(r)
}
