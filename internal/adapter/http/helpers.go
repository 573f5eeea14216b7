package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// ephemeralResponse renders as a private message when used as a slash
// command ack body.
type ephemeralResponse struct {
	ResponseType string `json:"response_type"`
	Text         string `json:"text"`
}

func ephemeralText(text string) ephemeralResponse {
	return ephemeralResponse{ResponseType: "ephemeral", Text: text}
}
