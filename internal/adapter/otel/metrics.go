package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "reminderbot"

// Metrics holds the bot's metric instruments.
type Metrics struct {
	Interactions  metric.Int64Counter
	TasksCreated  metric.Int64Counter
	RemindersSent metric.Int64Counter
	OptionQueries metric.Int64Counter
	StoreFailures metric.Int64Counter
	WorkDuration  metric.Float64Histogram
}

// NewMetrics creates all metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.Interactions, err = meter.Int64Counter("reminderbot.interactions",
		metric.WithDescription("Inbound Slack interactions by kind"))
	if err != nil {
		return nil, err
	}

	m.TasksCreated, err = meter.Int64Counter("reminderbot.tasks.created",
		metric.WithDescription("Tasks stored"))
	if err != nil {
		return nil, err
	}

	m.RemindersSent, err = meter.Int64Counter("reminderbot.reminders.sent",
		metric.WithDescription("Reminders delivered to their target"))
	if err != nil {
		return nil, err
	}

	m.OptionQueries, err = meter.Int64Counter("reminderbot.option.queries",
		metric.WithDescription("Option refreshes by resulting state"))
	if err != nil {
		return nil, err
	}

	m.StoreFailures, err = meter.Int64Counter("reminderbot.store.failures",
		metric.WithDescription("Task store operations that returned an error"))
	if err != nil {
		return nil, err
	}

	m.WorkDuration, err = meter.Float64Histogram("reminderbot.submission.duration_seconds",
		metric.WithDescription("Post-acknowledgment submission work duration in seconds"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RegisterBreakerGauge exposes the Slack client's circuit breaker
// state (0 closed, 1 open, 2 half-open) as an observable gauge.
func RegisterBreakerGauge(state func() int64) error {
	meter := otel.Meter(meterName)
	_, err := meter.Int64ObservableGauge("reminderbot.slack.breaker_state",
		metric.WithDescription("Slack client circuit breaker state"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(state())
			return nil
		}))
	return err
}
