package service

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/operations777/Reminder-bot/internal/adapter/otel"
	"github.com/operations777/Reminder-bot/internal/domain/task"
	"github.com/operations777/Reminder-bot/internal/port/chat"
	"github.com/operations777/Reminder-bot/internal/port/database"
)

// CreateSubmission carries a submitted create-task form.
type CreateSubmission struct {
	Request       task.CreateRequest
	Submitter     string // user who filled the form
	OriginChannel string // channel the slash command came from, may be empty
}

// TaskService validates and stores new tasks and confirms them to
// their creator.
type TaskService struct {
	store     database.Store
	messenger chat.Messenger
	metrics   *otel.Metrics
}

// NewTaskService creates a new TaskService.
func NewTaskService(store database.Store, messenger chat.Messenger, metrics *otel.Metrics) *TaskService {
	return &TaskService{store: store, messenger: messenger, metrics: metrics}
}

// Create handles a create-task submission end to end. The interaction
// is acknowledged before this runs, so every outcome is reported to
// the submitter privately rather than returned.
func (s *TaskService) Create(ctx context.Context, sub CreateSubmission) {
	if err := task.ValidateCreateRequest(sub.Request); err != nil {
		slog.Info("task creation rejected", "submitter", sub.Submitter, "error", err)
		privateNotice(ctx, s.messenger, sub.OriginChannel, sub.Submitter,
			"Couldn't save that task: "+validationReason(err)+".")
		return
	}

	if err := s.store.CreateTask(ctx, sub.Request); err != nil {
		slog.Error("store task", "owner", sub.Request.Owner, "error", err)
		s.metrics.StoreFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("op", "create_task")))
		privateNotice(ctx, s.messenger, sub.OriginChannel, sub.Submitter,
			"Something went wrong saving the task. Please try again.")
		return
	}
	s.metrics.TasksCreated.Add(ctx, 1)

	confirmation := fmt.Sprintf("Task saved for <@%s>: %q, due %s.",
		sub.Request.Owner, sub.Request.Text, sub.Request.DueDate)
	if err := s.messenger.SendDM(ctx, sub.Request.Creator, confirmation); err != nil {
		slog.Error("send creation confirmation", "creator", sub.Request.Creator, "error", err)
	}
	slog.Info("task created",
		"owner", sub.Request.Owner,
		"due_date", sub.Request.DueDate,
		"creator", sub.Request.Creator)
}
