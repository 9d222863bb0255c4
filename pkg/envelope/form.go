package envelope

import json "github.com/goccy/go-json"

// FieldType is the input kind of a form field.
type FieldType string

const (
	FieldText   FieldType = "text"
	FieldToggle FieldType = "toggle"
	FieldSelect FieldType = "select"
)

// Field is one configuration input. The value the user enters is sent back
// as a request header named ID.
type Field struct {
	Type         FieldType      `json:"type"`
	ID           string         `json:"id"`
	Label        string         `json:"label"`
	Placeholder  string         `json:"placeholder,omitempty"`
	HelpText     string         `json:"helpText,omitempty"`
	DefaultValue any            `json:"-"`
	Required     bool           `json:"required,omitempty"`
	Options      []SelectOption `json:"options,omitempty"`
}

type fieldJSON Field

// MarshalJSON emits defaultValue whenever it is set, including false and "".
func (f Field) MarshalJSON() ([]byte, error) {
	if f.DefaultValue == nil {
		return json.Marshal(fieldJSON(f))
	}
	return json.Marshal(struct {
		fieldJSON
		DefaultValue any `json:"defaultValue"`
	}{fieldJSON(f), f.DefaultValue})
}

// SelectOption is a choice of a select field.
type SelectOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// FieldRow is a single field, or several fields laid out side by side.
type FieldRow []Field

// Row groups fields into one row.
func Row(fields ...Field) FieldRow {
	return FieldRow(fields)
}

// MarshalJSON encodes a one-field row as the field itself.
func (r FieldRow) MarshalJSON() ([]byte, error) {
	if len(r) == 1 {
		return json.Marshal(r[0])
	}
	fields := []Field(r)
	if fields == nil {
		fields = []Field{}
	}
	return json.Marshal(fields)
}
