// Package http exposes the bot's webhook surface: slash commands,
// interactivity callbacks and option loads, plus liveness and
// readiness probes.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/operations777/Reminder-bot/internal/adapter/otel"
	"github.com/operations777/Reminder-bot/internal/adapter/slack"
	"github.com/operations777/Reminder-bot/internal/domain/task"
	"github.com/operations777/Reminder-bot/internal/logger"
	"github.com/operations777/Reminder-bot/internal/port/chat"
	"github.com/operations777/Reminder-bot/internal/service"
)

// Slash commands routed to the two modals.
const (
	CommandNewTask = "/task-new"
	CommandRemind  = "/remind"
)

// Handlers holds the HTTP handler dependencies.
type Handlers struct {
	Tasks     *service.TaskService
	Reminders *service.ReminderService
	Options   *service.OptionService
	Messenger chat.Messenger
	Metrics   *otel.Metrics

	// WorkTimeout bounds post-acknowledgment work per interaction.
	WorkTimeout time.Duration

	// ReadyCheck reports whether the backing store is reachable; nil
	// means always ready.
	ReadyCheck func(ctx context.Context) error
}

// HandleSlashCommand acknowledges a slash command and opens the
// matching modal. The ack must go out inside Slack's timeout budget,
// so the views.open call runs after it on its own clock.
func (h *Handlers) HandleSlashCommand(w http.ResponseWriter, r *http.Request) {
	cmd, err := slack.ParseSlashCommand(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed slash command")
		return
	}
	h.countInteraction(r.Context(), "command")

	var open func(context.Context, string, string) error
	switch cmd.Command {
	case CommandNewTask:
		open = h.Messenger.OpenCreateTaskModal
	case CommandRemind:
		open = h.Messenger.OpenReminderModal
	default:
		writeJSON(w, http.StatusOK, ephemeralText("Unknown command "+cmd.Command))
		return
	}

	// An empty 200 acks silently.
	w.WriteHeader(http.StatusOK)

	reqID := logger.RequestID(r.Context())
	go func() {
		defer recoverPanic("modal opener")

		ctx, cancel := context.WithTimeout(context.Background(), h.WorkTimeout)
		defer cancel()
		ctx = logger.WithRequestID(ctx, reqID)

		if err := open(ctx, cmd.TriggerID, cmd.ChannelID); err != nil {
			logger.FromContext(ctx, slog.Default()).Error("open modal",
				"command", cmd.Command, "user_id", cmd.UserID, "error", err)
			if derr := h.Messenger.SendDM(ctx, cmd.UserID,
				"Couldn't open the form. Please run the command again."); derr != nil {
				slog.Error("modal failure notice undeliverable", "user_id", cmd.UserID, "error", derr)
			}
		}
	}()
}

// HandleOptions serves block_suggestion callbacks. The options JSON
// is itself the acknowledgment, so it is computed synchronously and
// always returned, whatever the backend did.
func (h *Handlers) HandleOptions(w http.ResponseWriter, r *http.Request) {
	in, err := slack.ParseInteraction(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed interaction payload")
		return
	}
	h.countInteraction(r.Context(), "block_suggestion")

	ctx, span := otel.StartOptionQuerySpan(r.Context(), in.User.ID)
	defer span.End()

	// The typed query (in.Value) is ignored: options always reflect
	// the full open-task list for the picked user.
	opts := h.Options.OptionsFor(ctx, in.View.State.Values)

	resp := slack.OptionsResponse{Options: make([]slack.Option, 0, len(opts))}
	for _, o := range opts {
		resp.Options = append(resp.Options, slack.NewOption(o.Label, o.Value))
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleInteraction acknowledges view submissions and hands the work
// to a bounded background goroutine.
func (h *Handlers) HandleInteraction(w http.ResponseWriter, r *http.Request) {
	in, err := slack.ParseInteraction(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed interaction payload")
		return
	}

	if in.Type != slack.InteractionViewSubmission {
		// Unhandled interaction kinds still get their single ack.
		h.countInteraction(r.Context(), "other")
		w.WriteHeader(http.StatusOK)
		return
	}
	h.countInteraction(r.Context(), "view_submission")

	// An empty 200 closes the modal.
	w.WriteHeader(http.StatusOK)

	go h.processSubmission(in, logger.RequestID(r.Context()))
}

// processSubmission runs the post-ack work of a view submission under
// its own deadline. Failures surface as private notices from the
// services, never as HTTP errors.
func (h *Handlers) processSubmission(in *slack.Interaction, requestID string) {
	defer recoverPanic("submission worker")

	ctx, cancel := context.WithTimeout(context.Background(), h.WorkTimeout)
	defer cancel()
	ctx = logger.WithRequestID(ctx, requestID)
	ctx, span := otel.StartSubmissionSpan(ctx, in.View.CallbackID, in.User.ID)
	defer span.End()

	start := time.Now()
	defer func() {
		h.Metrics.WorkDuration.Record(ctx, time.Since(start).Seconds(),
			metric.WithAttributes(attribute.String("callback_id", in.View.CallbackID)))
	}()

	snap := in.View.State.Values
	origin := in.View.PrivateMetadata

	switch in.View.CallbackID {
	case slack.CallbackCreateTask:
		owner := snap.UserAt(slack.BlockOwner, slack.ActionOwner)
		if owner == "" {
			// The assignee picker is optional; default to the submitter.
			owner = in.User.ID
		}
		text := snap.TextAt(slack.BlockText, slack.ActionText)
		due := snap.TextAt(slack.BlockDue, slack.ActionDue)
		h.Tasks.Create(ctx, service.CreateSubmission{
			Request: task.CreateRequest{
				Owner:         owner,
				Text:          text,
				DueDate:       due,
				Creator:       in.User.ID,
				OriginChannel: origin,
			},
			Submitter:     in.User.ID,
			OriginChannel: origin,
		})
	case slack.CallbackRemind:
		target := snap.UserAt(slack.BlockTarget, slack.ActionTarget)
		value := snap.OptionAt(slack.BlockTask, slack.ActionTask)
		note := snap.TextAt(slack.BlockNote, slack.ActionNote)
		h.Reminders.Dispatch(ctx, service.ReminderSubmission{
			TargetUser:    target,
			TaskValue:     value,
			Note:          note,
			Invoker:       in.User.ID,
			OriginChannel: origin,
		})
	default:
		logger.FromContext(ctx, slog.Default()).Warn("unknown view submission",
			"callback_id", in.View.CallbackID)
	}
}

// HandleHealthz is the unauthenticated liveness probe.
func (h *Handlers) HandleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "running"})
}

// HandleReadyz reports whether the backing store is reachable.
func (h *Handlers) HandleReadyz(w http.ResponseWriter, r *http.Request) {
	if h.ReadyCheck != nil {
		if err := h.ReadyCheck(r.Context()); err != nil {
			slog.Warn("readiness check failed", "error", err)
			writeError(w, http.StatusServiceUnavailable, "store unreachable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (h *Handlers) countInteraction(ctx context.Context, kind string) {
	h.Metrics.Interactions.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

// recoverPanic keeps a panicking background worker from taking the
// process down.
func recoverPanic(what string) {
	if p := recover(); p != nil {
		slog.Error("panic in "+what, "panic", p)
	}
}
