// Package slack implements the chat.Messenger port against the Slack
// Web API and defines the bot's modal views and inbound payloads.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/operations777/Reminder-bot/internal/config"
	"github.com/operations777/Reminder-bot/internal/port/chat"
	"github.com/operations777/Reminder-bot/internal/resilience"
)

// Client talks to the Slack Web API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	breaker    *resilience.Breaker
	sem        *semaphore.Weighted
}

var _ chat.Messenger = (*Client)(nil)

// NewClient creates a Slack Web API client. cfg.MaxConcurrent bounds
// in-flight calls across all interactions.
func NewClient(cfg config.Slack) *Client {
	return &Client{
		baseURL: cfg.APIBaseURL,
		token:   cfg.BotToken,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		sem: semaphore.NewWeighted(cfg.MaxConcurrent),
	}
}

// SetBreaker attaches a circuit breaker to all outgoing API calls.
func (c *Client) SetBreaker(b *resilience.Breaker) {
	c.breaker = b
}

// OpenCreateTaskModal opens the task creation modal for the given
// trigger token.
func (c *Client) OpenCreateTaskModal(ctx context.Context, triggerID, channelID string) error {
	if err := c.openView(ctx, triggerID, CreateTaskView(channelID)); err != nil {
		return fmt.Errorf("open create-task modal: %w", err)
	}
	return nil
}

// OpenReminderModal opens the reminder dispatch modal for the given
// trigger token.
func (c *Client) OpenReminderModal(ctx context.Context, triggerID, channelID string) error {
	if err := c.openView(ctx, triggerID, ReminderView(channelID)); err != nil {
		return fmt.Errorf("open reminder modal: %w", err)
	}
	return nil
}

// SendDM sends a direct message to the given user.
func (c *Client) SendDM(ctx context.Context, userID, text string) error {
	payload := map[string]string{
		"channel": userID,
		"text":    text,
	}
	if err := c.call(ctx, "chat.postMessage", payload); err != nil {
		return fmt.Errorf("send dm to %s: %w", userID, err)
	}
	return nil
}

// SendEphemeral sends a message in channelID visible only to userID.
func (c *Client) SendEphemeral(ctx context.Context, channelID, userID, text string) error {
	payload := map[string]string{
		"channel": channelID,
		"user":    userID,
		"text":    text,
	}
	if err := c.call(ctx, "chat.postEphemeral", payload); err != nil {
		return fmt.Errorf("send ephemeral to %s in %s: %w", userID, channelID, err)
	}
	return nil
}

func (c *Client) openView(ctx context.Context, triggerID string, view View) error {
	payload := struct {
		TriggerID string `json:"trigger_id"`
		View      View   `json:"view"`
	}{TriggerID: triggerID, View: view}
	return c.call(ctx, "views.open", payload)
}

// apiResponse is the envelope every Web API method returns. A 200
// status with ok=false still means failure.
type apiResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func (c *Client) call(ctx context.Context, method string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", method, err)
	}

	doCall := func() error {
		if err := c.sem.Acquire(ctx, 1); err != nil {
			return fmt.Errorf("acquire send slot: %w", err)
		}
		defer c.sem.Release(1)

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+method, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
		req.Header.Set("Authorization", "Bearer "+c.token)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("http request: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}

		if resp.StatusCode >= 400 {
			return fmt.Errorf("slack API %s status %d: %s", method, resp.StatusCode, string(data))
		}

		var api apiResponse
		if err := json.Unmarshal(data, &api); err != nil {
			return fmt.Errorf("unmarshal %s response: %w", method, err)
		}
		if !api.OK {
			return fmt.Errorf("slack API %s: %s", method, api.Error)
		}
		return nil
	}

	if c.breaker != nil {
		return c.breaker.Execute(doCall)
	}
	return doCall()
}
