package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/operations777/Reminder-bot/internal/adapter/otel"
	"github.com/operations777/Reminder-bot/internal/domain"
	"github.com/operations777/Reminder-bot/internal/domain/task"
	"github.com/operations777/Reminder-bot/internal/middleware"
	"github.com/operations777/Reminder-bot/internal/port/chat"
	"github.com/operations777/Reminder-bot/internal/port/database"
	"github.com/operations777/Reminder-bot/internal/service"
)

const testSecret = "test-signing-secret"

// msgEvent records one messenger call from the handlers or services.
type msgEvent struct {
	kind string // open_create, open_remind, dm, ephemeral
	a, b string // trigger/channel or channel/user, depending on kind
	user string
	text string
}

type stubMessenger struct {
	events chan msgEvent
}

var _ chat.Messenger = (*stubMessenger)(nil)

func newStubMessenger() *stubMessenger {
	return &stubMessenger{events: make(chan msgEvent, 16)}
}

func (s *stubMessenger) OpenCreateTaskModal(_ context.Context, triggerID, channelID string) error {
	s.events <- msgEvent{kind: "open_create", a: triggerID, b: channelID}
	return nil
}

func (s *stubMessenger) OpenReminderModal(_ context.Context, triggerID, channelID string) error {
	s.events <- msgEvent{kind: "open_remind", a: triggerID, b: channelID}
	return nil
}

func (s *stubMessenger) SendDM(_ context.Context, userID, text string) error {
	s.events <- msgEvent{kind: "dm", user: userID, text: text}
	return nil
}

func (s *stubMessenger) SendEphemeral(_ context.Context, channelID, userID, text string) error {
	s.events <- msgEvent{kind: "ephemeral", a: channelID, user: userID, text: text}
	return nil
}

func (s *stubMessenger) next(t *testing.T) msgEvent {
	t.Helper()
	select {
	case e := <-s.events:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for messenger call")
		return msgEvent{}
	}
}

type stubStore struct {
	mu      sync.Mutex
	created []task.CreateRequest
	open    []task.Summary
	tasks   map[int64]*task.Task
	listErr error
}

var _ database.Store = (*stubStore)(nil)

func (s *stubStore) CreateTask(_ context.Context, req task.CreateRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, req)
	return nil
}

func (s *stubStore) GetTask(_ context.Context, id int64) (*task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tasks[id]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("get task %d: %w", id, domain.ErrNotFound)
}

func (s *stubStore) ListOpenTasks(_ context.Context, _ string, limit int) ([]task.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	if len(s.open) > limit {
		return s.open[:limit], nil
	}
	return s.open, nil
}

func (s *stubStore) createdTasks() []task.CreateRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]task.CreateRequest(nil), s.created...)
}

func testRouter(t *testing.T, store *stubStore, msg *stubMessenger) http.Handler {
	t.Helper()
	metrics, err := otel.NewMetrics()
	if err != nil {
		t.Fatalf("create metrics: %v", err)
	}
	h := &Handlers{
		Tasks:       service.NewTaskService(store, msg, metrics),
		Reminders:   service.NewReminderService(store, msg, metrics),
		Options:     service.NewOptionService(store, metrics),
		Messenger:   msg,
		Metrics:     metrics,
		WorkTimeout: 2 * time.Second,
	}
	r := chi.NewRouter()
	MountRoutes(r, h, testSecret)
	return r
}

func signedForm(t *testing.T, path string, form url.Values) *http.Request {
	t.Helper()
	body := form.Encode()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	req.Header.Set("X-Slack-Request-Timestamp", ts)
	req.Header.Set("X-Slack-Signature", middleware.SlackSign(testSecret, ts, []byte(body)))
	return req
}

func TestHealthz(t *testing.T) {
	router := testRouter(t, &stubStore{}, newStubMessenger())

	req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "running") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestReadyzFailing(t *testing.T) {
	metrics, _ := otel.NewMetrics()
	h := &Handlers{
		Metrics:    metrics,
		ReadyCheck: func(context.Context) error { return fmt.Errorf("connection refused") },
	}
	rec := httptest.NewRecorder()
	h.HandleReadyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestSlashCommandOpensCreateModal(t *testing.T) {
	msg := newStubMessenger()
	router := testRouter(t, &stubStore{}, msg)

	req := signedForm(t, "/slack/commands", url.Values{
		"command":    {CommandNewTask},
		"user_id":    {"U200"},
		"channel_id": {"C300"},
		"trigger_id": {"trig-1"},
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 ack, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty ack body, got %q", rec.Body.String())
	}

	e := msg.next(t)
	if e.kind != "open_create" {
		t.Fatalf("expected create modal open, got %q", e.kind)
	}
	if e.a != "trig-1" || e.b != "C300" {
		t.Fatalf("unexpected modal args: trigger=%q channel=%q", e.a, e.b)
	}
}

func TestSlashCommandOpensReminderModal(t *testing.T) {
	msg := newStubMessenger()
	router := testRouter(t, &stubStore{}, msg)

	req := signedForm(t, "/slack/commands", url.Values{
		"command":    {CommandRemind},
		"user_id":    {"U200"},
		"channel_id": {"C300"},
		"trigger_id": {"trig-2"},
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 ack, got %d", rec.Code)
	}
	if e := msg.next(t); e.kind != "open_remind" {
		t.Fatalf("expected reminder modal open, got %q", e.kind)
	}
}

func TestSlashCommandUnknown(t *testing.T) {
	msg := newStubMessenger()
	router := testRouter(t, &stubStore{}, msg)

	req := signedForm(t, "/slack/commands", url.Values{
		"command": {"/unrelated"},
		"user_id": {"U200"},
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Unknown command") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestSlashCommandRejectsUnsigned(t *testing.T) {
	msg := newStubMessenger()
	router := testRouter(t, &stubStore{}, msg)

	body := url.Values{"command": {CommandNewTask}}.Encode()
	req := httptest.NewRequest(http.MethodPost, "/slack/commands", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unsigned request, got %d", rec.Code)
	}
	select {
	case e := <-msg.events:
		t.Fatalf("no messenger call expected, got %q", e.kind)
	case <-time.After(100 * time.Millisecond):
	}
}

func optionsPayload(selectedUser string) string {
	state := `{}`
	if selectedUser != "" {
		state = fmt.Sprintf(`{
			"target_block": {
				"target_select": {"type": "users_select", "selected_user": %q}
			}
		}`, selectedUser)
	}
	return fmt.Sprintf(`{
		"type": "block_suggestion",
		"user": {"id": "U200"},
		"action_id": "task_select",
		"block_id": "task_block",
		"value": "",
		"view": {
			"callback_id": "send_reminder_modal",
			"state": {"values": %s}
		}
	}`, state)
}

// optionRow mirrors the wire shape of one option in the ack body.
type optionRow struct {
	Text struct {
		Text string `json:"text"`
	} `json:"text"`
	Value string `json:"value"`
}

func decodeOptions(t *testing.T, body []byte) []optionRow {
	t.Helper()
	var resp struct {
		Options []optionRow `json:"options"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode options response: %v", err)
	}
	return resp.Options
}

func TestOptionsNoUserSelected(t *testing.T) {
	router := testRouter(t, &stubStore{}, newStubMessenger())

	req := signedForm(t, "/slack/options", url.Values{"payload": {optionsPayload("")}})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	opts := decodeOptions(t, rec.Body.Bytes())
	if len(opts) != 1 || opts[0].Value != "no_user" {
		t.Fatalf("expected no_user placeholder, got %+v", opts)
	}
}

func TestOptionsReturnsOpenTasks(t *testing.T) {
	store := &stubStore{open: []task.Summary{
		{ID: 7, Text: "Ship report", DueDate: "2025-03-01"},
		{ID: 9, Text: "File expenses", DueDate: "2025-04-01"},
	}}
	router := testRouter(t, store, newStubMessenger())

	req := signedForm(t, "/slack/options", url.Values{"payload": {optionsPayload("U100")}})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	opts := decodeOptions(t, rec.Body.Bytes())
	if len(opts) != 2 {
		t.Fatalf("expected 2 options, got %d", len(opts))
	}
	if opts[0].Value != "7" || opts[0].Text.Text != "Ship report — due 2025-03-01" {
		t.Fatalf("unexpected first option: %+v", opts[0])
	}
	if opts[1].Value != "9" {
		t.Fatalf("unexpected second option: %+v", opts[1])
	}
}

func TestOptionsStoreErrorStillAcked(t *testing.T) {
	store := &stubStore{listErr: fmt.Errorf("connection refused")}
	router := testRouter(t, store, newStubMessenger())

	req := signedForm(t, "/slack/options", url.Values{"payload": {optionsPayload("U100")}})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("store errors must not fail the ack, got %d", rec.Code)
	}
	opts := decodeOptions(t, rec.Body.Bytes())
	if len(opts) != 1 || opts[0].Value != "err" {
		t.Fatalf("expected err placeholder, got %+v", opts)
	}
}

func createSubmissionPayload(owner, text, due string) string {
	ownerState := `{"type": "users_select", "selected_user": null}`
	if owner != "" {
		ownerState = fmt.Sprintf(`{"type": "users_select", "selected_user": %q}`, owner)
	}
	return fmt.Sprintf(`{
		"type": "view_submission",
		"user": {"id": "U200"},
		"view": {
			"callback_id": "create_task_modal",
			"private_metadata": "C300",
			"state": {"values": {
				"owner_block": {"owner_select": %s},
				"text_block": {"task_text": {"type": "plain_text_input", "value": %q}},
				"due_block": {"due_date": {"type": "plain_text_input", "value": %q}}
			}}
		}
	}`, ownerState, text, due)
}

func TestSubmissionCreatesTask(t *testing.T) {
	store := &stubStore{}
	msg := newStubMessenger()
	router := testRouter(t, store, msg)

	payload := createSubmissionPayload("U100", "Ship report", "2025-03-01")
	req := signedForm(t, "/slack/interactions", url.Values{"payload": {payload}})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 ack, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty ack body, got %q", rec.Body.String())
	}

	// The confirmation DM goes out only after the store write.
	conf := msg.next(t)
	if conf.kind != "dm" || conf.user != "U200" {
		t.Fatalf("expected confirmation dm to submitter, got %+v", conf)
	}

	created := store.createdTasks()
	if len(created) != 1 {
		t.Fatalf("expected 1 stored task, got %d", len(created))
	}
	if created[0].Owner != "U100" || created[0].Creator != "U200" {
		t.Fatalf("unexpected task: %+v", created[0])
	}
	if created[0].OriginChannel != "C300" {
		t.Fatalf("origin channel not carried: %+v", created[0])
	}
}

func TestSubmissionOwnerDefaultsToSubmitter(t *testing.T) {
	store := &stubStore{}
	msg := newStubMessenger()
	router := testRouter(t, store, msg)

	payload := createSubmissionPayload("", "Ship report", "2025-03-01")
	req := signedForm(t, "/slack/interactions", url.Values{"payload": {payload}})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	msg.next(t) // confirmation dm

	created := store.createdTasks()
	if len(created) != 1 {
		t.Fatalf("expected 1 stored task, got %d", len(created))
	}
	if created[0].Owner != "U200" {
		t.Fatalf("expected owner to default to submitter, got %q", created[0].Owner)
	}
}

func TestSubmissionInvalidStillAcked(t *testing.T) {
	store := &stubStore{}
	msg := newStubMessenger()
	router := testRouter(t, store, msg)

	payload := createSubmissionPayload("U100", "   ", "2025-03-01")
	req := signedForm(t, "/slack/interactions", url.Values{"payload": {payload}})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("invalid submissions still get their ack, got %d", rec.Code)
	}

	notice := msg.next(t)
	if notice.kind != "ephemeral" || notice.user != "U200" {
		t.Fatalf("expected ephemeral notice to submitter, got %+v", notice)
	}
	if !strings.Contains(notice.text, "task text is empty") {
		t.Fatalf("notice does not describe the problem: %q", notice.text)
	}
	if len(store.createdTasks()) != 0 {
		t.Fatal("no store write expected for invalid submission")
	}
}

func TestSubmissionDispatchesReminder(t *testing.T) {
	store := &stubStore{tasks: map[int64]*task.Task{
		42: {ID: 42, Owner: "U100", Text: "Ship report", DueDate: "2025-03-01", Creator: "U200"},
	}}
	msg := newStubMessenger()
	router := testRouter(t, store, msg)

	payload := `{
		"type": "view_submission",
		"user": {"id": "U200"},
		"view": {
			"callback_id": "send_reminder_modal",
			"private_metadata": "C300",
			"state": {"values": {
				"target_block": {"target_select": {"type": "users_select", "selected_user": "U100"}},
				"task_block": {"task_select": {"type": "external_select", "selected_option": {"value": "42"}}},
				"note_block": {"custom_note": {"type": "plain_text_input", "value": "Deadline moved."}}
			}}
		}
	}`
	req := signedForm(t, "/slack/interactions", url.Values{"payload": {payload}})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 ack, got %d", rec.Code)
	}

	reminder := msg.next(t)
	if reminder.kind != "dm" || reminder.user != "U100" {
		t.Fatalf("expected reminder dm to target, got %+v", reminder)
	}
	if !strings.Contains(reminder.text, "Ship report") || !strings.Contains(reminder.text, "Deadline moved.") {
		t.Fatalf("reminder missing details: %q", reminder.text)
	}

	conf := msg.next(t)
	if conf.kind != "ephemeral" || conf.user != "U200" || conf.a != "C300" {
		t.Fatalf("expected ephemeral confirmation to invoker, got %+v", conf)
	}
	if !strings.Contains(conf.text, "#42") || !strings.Contains(conf.text, "<@U100>") {
		t.Fatalf("confirmation must name target and task id: %q", conf.text)
	}
}

func TestInteractionMalformedPayload(t *testing.T) {
	router := testRouter(t, &stubStore{}, newStubMessenger())

	req := signedForm(t, "/slack/interactions", url.Values{"payload": {"{broken"}})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestInteractionOtherTypesAcked(t *testing.T) {
	router := testRouter(t, &stubStore{}, newStubMessenger())

	payload := `{"type": "block_actions", "user": {"id": "U200"}}`
	req := signedForm(t, "/slack/interactions", url.Values{"payload": {payload}})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 ack for unhandled interaction type, got %d", rec.Code)
	}
}
