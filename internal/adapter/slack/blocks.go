package slack

// Block Kit wire types, limited to what the bot's modals and option
// responses use.

// Text is a Block Kit text object.
type Text struct {
	Type  string `json:"type"` // "plain_text" or "mrkdwn"
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

// plainText builds a plain_text object.
func plainText(s string) *Text {
	return &Text{Type: "plain_text", Text: s}
}

// View is a modal view definition.
type View struct {
	Type            string  `json:"type"`
	CallbackID      string  `json:"callback_id"`
	Title           *Text   `json:"title"`
	Submit          *Text   `json:"submit,omitempty"`
	Close           *Text   `json:"close,omitempty"`
	PrivateMetadata string  `json:"private_metadata,omitempty"`
	Blocks          []Block `json:"blocks"`
}

// Block is an input block inside a modal.
type Block struct {
	Type     string   `json:"type"`
	BlockID  string   `json:"block_id,omitempty"`
	Label    *Text    `json:"label,omitempty"`
	Element  *Element `json:"element,omitempty"`
	Optional bool     `json:"optional,omitempty"`
}

// Element is a block element. Type selects which optional fields apply.
type Element struct {
	Type           string `json:"type"`
	ActionID       string `json:"action_id,omitempty"`
	Placeholder    *Text  `json:"placeholder,omitempty"`
	Multiline      bool   `json:"multiline,omitempty"`
	MinQueryLength *int   `json:"min_query_length,omitempty"`
}

// Option is a (label, value) pair served to an external select.
type Option struct {
	Text  *Text  `json:"text"`
	Value string `json:"value"`
}

// NewOption builds an option with a plain_text label.
func NewOption(label, value string) Option {
	return Option{Text: plainText(label), Value: value}
}

// OptionsResponse is the acknowledgment body for a block_suggestion
// request.
type OptionsResponse struct {
	Options []Option `json:"options"`
}
