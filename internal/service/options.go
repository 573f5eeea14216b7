package service

import (
	"context"
	"log/slog"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/operations777/Reminder-bot/internal/adapter/otel"
	"github.com/operations777/Reminder-bot/internal/domain/form"
	"github.com/operations777/Reminder-bot/internal/domain/task"
	"github.com/operations777/Reminder-bot/internal/port/database"
)

const (
	// maxOptions caps how many tasks one option refresh returns.
	maxOptions = 50
	// maxLabelText is where labels cut task text before the ellipsis
	// and due-date suffix, keeping the whole label within the
	// platform's 75-character display bound.
	maxLabelText = 72
)

// OptionService derives the reminder modal's task options from the
// submitted form snapshot. Every call computes its state fresh;
// nothing is cached between interactions.
type OptionService struct {
	store   database.Store
	metrics *otel.Metrics
}

// NewOptionService creates a new OptionService.
func NewOptionService(store database.Store, metrics *otel.Metrics) *OptionService {
	return &OptionService{store: store, metrics: metrics}
}

// OptionsFor produces the option list for the current snapshot. It
// never fails: a backend error collapses to a placeholder option and
// a log line, because the caller must always receive options.
func (s *OptionService) OptionsFor(ctx context.Context, snap form.Snapshot) []form.Option {
	owner, ok := snap.SelectedUser()
	if !ok {
		s.count(ctx, "no_user")
		return []form.Option{form.NoUserOption()}
	}

	summaries, err := s.store.ListOpenTasks(ctx, owner, maxOptions)
	if err != nil {
		slog.Error("list open tasks for options", "owner", owner, "error", err)
		s.metrics.StoreFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("op", "list_open_tasks")))
		s.count(ctx, "error")
		return []form.Option{form.ErrorOption()}
	}
	if len(summaries) == 0 {
		s.count(ctx, "no_tasks")
		return []form.Option{form.NoTasksOption()}
	}

	opts := make([]form.Option, 0, len(summaries))
	for _, sum := range summaries {
		opts = append(opts, form.Option{
			Label: optionLabel(sum),
			Value: strconv.FormatInt(sum.ID, 10),
		})
	}
	s.count(ctx, "results")
	return opts
}

func (s *OptionService) count(ctx context.Context, state string) {
	s.metrics.OptionQueries.Add(ctx, 1, metric.WithAttributes(attribute.String("state", state)))
}

// optionLabel renders "<text> — due <date>", cutting long text at
// maxLabelText runes with an ellipsis marker.
func optionLabel(sum task.Summary) string {
	text := sum.Text
	if runes := []rune(text); len(runes) > maxLabelText {
		text = string(runes[:maxLabelText]) + "..."
	}
	return text + " — due " + sum.DueDate
}
