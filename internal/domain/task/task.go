// Package task defines the Task domain entity.
package task

import "time"

// Task represents a dated reminder item owned by a user.
type Task struct {
	ID            int64     `json:"id"`
	Owner         string    `json:"user_id"`
	Text          string    `json:"task_text"`
	DueDate       string    `json:"due_date"`
	Creator       string    `json:"created_by"`
	OriginChannel string    `json:"channel_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	Completed     bool      `json:"completed"`
}

// Summary is the slice of a task the option list needs: identity,
// display text, and due date.
type Summary struct {
	ID      int64  `json:"id"`
	Text    string `json:"task_text"`
	DueDate string `json:"due_date"`
}

// CreateRequest holds the fields needed to create a new task.
// OriginChannel may be empty when the creating interaction carries no
// channel context.
type CreateRequest struct {
	Owner         string `json:"user_id"`
	Text          string `json:"task_text"`
	DueDate       string `json:"due_date"`
	Creator       string `json:"created_by"`
	OriginChannel string `json:"channel_id,omitempty"`
}
