// Package database defines the task store port (interface).
package database

import (
	"context"

	"github.com/operations777/Reminder-bot/internal/domain/task"
)

// Store is the port interface for task persistence.
type Store interface {
	// CreateTask inserts a new task. Only success or failure is
	// reported; confirmation messages are built from the request.
	CreateTask(ctx context.Context, req task.CreateRequest) error

	// GetTask returns the task with the given id, or
	// domain.ErrNotFound when no such row exists.
	GetTask(ctx context.Context, id int64) (*task.Task, error)

	// ListOpenTasks returns summaries of the owner's not-completed
	// tasks ordered by due date ascending, capped at limit rows.
	// Rows with equal due dates keep the store's natural order.
	ListOpenTasks(ctx context.Context, owner string, limit int) ([]task.Summary, error)
}
