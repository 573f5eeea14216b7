package slack_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/operations777/Reminder-bot/internal/adapter/slack"
	"github.com/operations777/Reminder-bot/internal/config"
	"github.com/operations777/Reminder-bot/internal/resilience"
)

func testClient(baseURL string) *slack.Client {
	return slack.NewClient(config.Slack{
		BotToken:      "xoxb-test",
		SigningSecret: "secret",
		APIBaseURL:    baseURL,
		MaxConcurrent: 4,
	})
}

func TestSendDM(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat.postMessage" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer xoxb-test" {
			t.Fatalf("unexpected auth: %q", auth)
		}

		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["channel"] != "U123" {
			t.Fatalf("expected channel U123, got %q", body["channel"])
		}
		if body["text"] != "hello there" {
			t.Fatalf("unexpected text: %q", body["text"])
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	if err := c.SendDM(context.Background(), "U123", "hello there"); err != nil {
		t.Fatalf("SendDM failed: %v", err)
	}
}

func TestSendEphemeral(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat.postEphemeral" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}

		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["channel"] != "C42" || body["user"] != "U9" {
			t.Fatalf("unexpected target: channel=%q user=%q", body["channel"], body["user"])
		}

		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	if err := c.SendEphemeral(context.Background(), "C42", "U9", "done"); err != nil {
		t.Fatalf("SendEphemeral failed: %v", err)
	}
}

func TestOpenCreateTaskModal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/views.open" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}

		var body struct {
			TriggerID string `json:"trigger_id"`
			View      struct {
				CallbackID      string `json:"callback_id"`
				PrivateMetadata string `json:"private_metadata"`
			} `json:"view"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.TriggerID != "trig-1" {
			t.Fatalf("expected trigger trig-1, got %q", body.TriggerID)
		}
		if body.View.CallbackID != slack.CallbackCreateTask {
			t.Fatalf("unexpected callback: %q", body.View.CallbackID)
		}
		if body.View.PrivateMetadata != "C42" {
			t.Fatalf("expected origin channel in metadata, got %q", body.View.PrivateMetadata)
		}

		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	if err := c.OpenCreateTaskModal(context.Background(), "trig-1", "C42"); err != nil {
		t.Fatalf("OpenCreateTaskModal failed: %v", err)
	}
}

func TestOpenReminderModal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			View struct {
				CallbackID string `json:"callback_id"`
			} `json:"view"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.View.CallbackID != slack.CallbackRemind {
			t.Fatalf("unexpected callback: %q", body.View.CallbackID)
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	if err := c.OpenReminderModal(context.Background(), "trig-2", ""); err != nil {
		t.Fatalf("OpenReminderModal failed: %v", err)
	}
}

func TestAPIErrorWithOKFalse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// Slack reports most failures as HTTP 200 with ok=false.
		_, _ = w.Write([]byte(`{"ok":false,"error":"invalid_auth"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	err := c.SendDM(context.Background(), "U123", "hi")
	if err == nil {
		t.Fatal("expected error for ok=false response")
	}
	if !strings.Contains(err.Error(), "invalid_auth") {
		t.Fatalf("expected invalid_auth in error, got %v", err)
	}
}

func TestHTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("internal error"))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	if err := c.SendDM(context.Background(), "U123", "hi"); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestBreakerRejectsWhenOpen(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = w.Write([]byte(`{"ok":false,"error":"fatal_error"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	c.SetBreaker(resilience.NewBreaker(1, time.Minute))

	if err := c.SendDM(context.Background(), "U123", "hi"); err == nil {
		t.Fatal("expected error from failing API")
	}

	// The breaker tripped, so the next call never reaches the server.
	err := c.SendDM(context.Background(), "U123", "hi")
	if !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
	if hits != 1 {
		t.Fatalf("expected 1 request to reach the server, got %d", hits)
	}
}
