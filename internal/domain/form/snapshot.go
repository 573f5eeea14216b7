// Package form models the platform-held state of an open interactive
// form: the snapshot tree echoed back on every option request and
// submission, the typed field values inside it, and the reserved
// sentinel option values.
package form

import "encoding/json"

// Kind discriminates field value variants. The tag is checked before
// any payload is interpreted.
type Kind string

const (
	// KindUserPicker is a user-select element carrying a selected user id.
	KindUserPicker Kind = "users_select"
	// KindTextInput is a free-text element carrying its current text.
	KindTextInput Kind = "plain_text_input"
	// KindOptionPicker is an external-select element carrying a selected
	// option value.
	KindOptionPicker Kind = "external_select"
)

// Value is one field's current state. Exactly one payload field is
// meaningful, selected by Kind; the rest stay zero.
type Value struct {
	Kind           Kind
	SelectedUser   string
	Text           string
	SelectedOption string
}

// Snapshot maps block id to field id to field value. It is owned by
// the caller, lives for one interaction round-trip, and is only read.
type Snapshot map[string]map[string]Value

// UnmarshalJSON decodes a field value from the platform's state tree.
// Malformed or unknown field values decode as inert: all payloads
// empty, so accessors treat them as not present.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type         string `json:"type"`
		SelectedUser string `json:"selected_user"`
		Value        string `json:"value"`
		SelectedOpt  *struct {
			Value string `json:"value"`
		} `json:"selected_option"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		*v = Value{}
		return nil
	}

	*v = Value{Kind: Kind(raw.Type)}
	switch v.Kind {
	case KindUserPicker:
		v.SelectedUser = raw.SelectedUser
	case KindTextInput:
		v.Text = raw.Value
	case KindOptionPicker:
		if raw.SelectedOpt != nil {
			v.SelectedOption = raw.SelectedOpt.Value
		}
	}
	return nil
}
