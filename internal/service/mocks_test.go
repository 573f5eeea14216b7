package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/operations777/Reminder-bot/internal/adapter/otel"
	"github.com/operations777/Reminder-bot/internal/domain"
	"github.com/operations777/Reminder-bot/internal/domain/task"
	"github.com/operations777/Reminder-bot/internal/port/chat"
	"github.com/operations777/Reminder-bot/internal/port/database"
)

// mockStore implements database.Store for testing.
type mockStore struct {
	created   []task.CreateRequest
	createErr error

	tasks  map[int64]*task.Task
	getErr error

	open      []task.Summary
	listErr   error
	lastOwner string
	lastLimit int
	getCalls  int
}

var _ database.Store = (*mockStore)(nil)

func (m *mockStore) CreateTask(_ context.Context, req task.CreateRequest) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, req)
	return nil
}

func (m *mockStore) GetTask(_ context.Context, id int64) (*task.Task, error) {
	m.getCalls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	t, ok := m.tasks[id]
	if !ok {
		return nil, fmt.Errorf("get task %d: %w", id, domain.ErrNotFound)
	}
	return t, nil
}

func (m *mockStore) ListOpenTasks(_ context.Context, owner string, limit int) ([]task.Summary, error) {
	m.lastOwner, m.lastLimit = owner, limit
	if m.listErr != nil {
		return nil, m.listErr
	}
	if len(m.open) > limit {
		return m.open[:limit], nil
	}
	return m.open, nil
}

// sentMessage records one outbound message.
type sentMessage struct {
	kind    string // "dm" or "ephemeral"
	channel string
	user    string
	text    string
}

// mockMessenger implements chat.Messenger for testing.
type mockMessenger struct {
	sent         []sentMessage
	dmErr        error
	ephemeralErr error
}

var _ chat.Messenger = (*mockMessenger)(nil)

func (m *mockMessenger) OpenCreateTaskModal(_ context.Context, _, _ string) error { return nil }
func (m *mockMessenger) OpenReminderModal(_ context.Context, _, _ string) error   { return nil }

func (m *mockMessenger) SendDM(_ context.Context, userID, text string) error {
	if m.dmErr != nil {
		return m.dmErr
	}
	m.sent = append(m.sent, sentMessage{kind: "dm", user: userID, text: text})
	return nil
}

func (m *mockMessenger) SendEphemeral(_ context.Context, channelID, userID, text string) error {
	if m.ephemeralErr != nil {
		return m.ephemeralErr
	}
	m.sent = append(m.sent, sentMessage{kind: "ephemeral", channel: channelID, user: userID, text: text})
	return nil
}

// lastTo returns the most recent message delivered to userID.
func (m *mockMessenger) lastTo(t *testing.T, userID string) sentMessage {
	t.Helper()
	for i := len(m.sent) - 1; i >= 0; i-- {
		if m.sent[i].user == userID {
			return m.sent[i]
		}
	}
	t.Fatalf("no message sent to %s (got %v)", userID, m.sent)
	return sentMessage{}
}

func testMetrics(t *testing.T) *otel.Metrics {
	t.Helper()
	m, err := otel.NewMetrics()
	if err != nil {
		t.Fatalf("create metrics: %v", err)
	}
	return m
}
