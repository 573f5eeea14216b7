package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/operations777/Reminder-bot/internal/adapter/otel"
	"github.com/operations777/Reminder-bot/internal/domain"
	"github.com/operations777/Reminder-bot/internal/domain/form"
	"github.com/operations777/Reminder-bot/internal/port/chat"
	"github.com/operations777/Reminder-bot/internal/port/database"
)

// ReminderSubmission carries a submitted reminder form.
type ReminderSubmission struct {
	TargetUser    string
	TaskValue     string // raw option value from the task select
	Note          string // optional custom message
	Invoker       string
	OriginChannel string
}

// ReminderService resolves a chosen task and delivers the reminder.
type ReminderService struct {
	store     database.Store
	messenger chat.Messenger
	metrics   *otel.Metrics
}

// NewReminderService creates a new ReminderService.
func NewReminderService(store database.Store, messenger chat.Messenger, metrics *otel.Metrics) *ReminderService {
	return &ReminderService{store: store, messenger: messenger, metrics: metrics}
}

// Dispatch handles a reminder submission end to end. Like task
// creation, the ack is already out; outcomes flow back privately.
func (s *ReminderService) Dispatch(ctx context.Context, sub ReminderSubmission) {
	if err := form.ValidateReminderSelection(sub.TargetUser, sub.TaskValue); err != nil {
		slog.Info("reminder rejected", "invoker", sub.Invoker, "error", err)
		privateNotice(ctx, s.messenger, sub.OriginChannel, sub.Invoker,
			"Couldn't send that reminder: "+validationReason(err)+".")
		return
	}

	id, err := strconv.ParseInt(sub.TaskValue, 10, 64)
	if err != nil {
		slog.Warn("reminder task value is not an id", "value", sub.TaskValue, "invoker", sub.Invoker)
		privateNotice(ctx, s.messenger, sub.OriginChannel, sub.Invoker,
			"Couldn't send that reminder: the task selection isn't valid.")
		return
	}

	t, err := s.store.GetTask(ctx, id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		// The task vanished between the option fetch and the submit.
		// An expected race, reported calmly.
		slog.Info("reminder task no longer exists", "task_id", id, "invoker", sub.Invoker)
		privateNotice(ctx, s.messenger, sub.OriginChannel, sub.Invoker,
			fmt.Sprintf("Task %d was not found; it may have been removed. No reminder sent.", id))
		return
	case err != nil:
		slog.Error("get task", "task_id", id, "error", err)
		s.metrics.StoreFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("op", "get_task")))
		privateNotice(ctx, s.messenger, sub.OriginChannel, sub.Invoker,
			"Something went wrong looking up the task. Please try again.")
		return
	}

	text := fmt.Sprintf("Reminder: %q is due %s.", t.Text, t.DueDate)
	if note := strings.TrimSpace(sub.Note); note != "" {
		text += "\n\n" + note
	}
	if err := s.messenger.SendDM(ctx, sub.TargetUser, text); err != nil {
		slog.Error("send reminder", "target", sub.TargetUser, "task_id", id, "error", err)
		privateNotice(ctx, s.messenger, sub.OriginChannel, sub.Invoker,
			fmt.Sprintf("Couldn't deliver the reminder to <@%s>. Please try again.", sub.TargetUser))
		return
	}
	s.metrics.RemindersSent.Add(ctx, 1)

	privateNotice(ctx, s.messenger, sub.OriginChannel, sub.Invoker,
		fmt.Sprintf("Reminder about task #%d sent to <@%s>.", id, sub.TargetUser))
	slog.Info("reminder sent", "target", sub.TargetUser, "task_id", id, "invoker", sub.Invoker)
}
