package slack

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/operations777/Reminder-bot/internal/domain/form"
)

// Interaction types the bot handles.
const (
	InteractionViewSubmission  = "view_submission"
	InteractionBlockSuggestion = "block_suggestion"
)

// SlashCommand is the form-encoded body of a slash command invocation.
type SlashCommand struct {
	Command   string
	Text      string
	UserID    string
	ChannelID string
	TriggerID string
}

// ParseSlashCommand decodes a slash command request body.
func ParseSlashCommand(r *http.Request) (*SlashCommand, error) {
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("parse slash command form: %w", err)
	}
	cmd := &SlashCommand{
		Command:   r.PostFormValue("command"),
		Text:      r.PostFormValue("text"),
		UserID:    r.PostFormValue("user_id"),
		ChannelID: r.PostFormValue("channel_id"),
		TriggerID: r.PostFormValue("trigger_id"),
	}
	if cmd.Command == "" {
		return nil, fmt.Errorf("parse slash command: missing command field")
	}
	return cmd, nil
}

// User identifies the person who triggered an interaction.
type User struct {
	ID string `json:"id"`
}

// ViewState wraps the submitted form snapshot.
type ViewState struct {
	Values form.Snapshot `json:"values"`
}

// ViewPayload is the view portion of an interaction payload.
type ViewPayload struct {
	CallbackID      string    `json:"callback_id"`
	PrivateMetadata string    `json:"private_metadata"`
	State           ViewState `json:"state"`
}

// Interaction is the decoded "payload" field of an interactivity
// request. Value carries the typed query on block_suggestion requests.
type Interaction struct {
	Type     string      `json:"type"`
	User     User        `json:"user"`
	View     ViewPayload `json:"view"`
	ActionID string      `json:"action_id"`
	BlockID  string      `json:"block_id"`
	Value    string      `json:"value"`
}

// ParseInteraction decodes an interactivity request. Slack sends these
// form-encoded with the JSON document in a single "payload" field.
func ParseInteraction(r *http.Request) (*Interaction, error) {
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("parse interaction form: %w", err)
	}
	raw := r.PostFormValue("payload")
	if raw == "" {
		return nil, fmt.Errorf("parse interaction: missing payload field")
	}
	var in Interaction
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		return nil, fmt.Errorf("decode interaction payload: %w", err)
	}
	return &in, nil
}
