package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/operations777/Reminder-bot/internal/domain"
	"github.com/operations777/Reminder-bot/internal/domain/task"
	"github.com/operations777/Reminder-bot/internal/port/database"
)

// dateLayout renders DATE columns in the lexical form the domain uses.
const dateLayout = "2006-01-02"

// Store implements database.Store using PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

var _ database.Store = (*Store)(nil)

// NewStore creates a new Store backed by the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// CreateTask inserts a single task row. The due date travels as text
// and is coerced by the DATE column, so a lexically valid but
// impossible calendar date surfaces here as an insert error.
func (s *Store) CreateTask(ctx context.Context, req task.CreateRequest) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO tasks (user_id, task_text, due_date, created_by, channel_id)
		 VALUES ($1, $2, $3, $4, $5)`,
		req.Owner, req.Text, req.DueDate, req.Creator, nullIfEmpty(req.OriginChannel))
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// GetTask returns the task with the given id.
func (s *Store) GetTask(ctx context.Context, id int64) (*task.Task, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, user_id, task_text, due_date, created_by, channel_id, created_at, completed
		 FROM tasks WHERE id = $1`, id)

	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("get task %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	return &t, nil
}

// ListOpenTasks returns the owner's not-completed tasks ordered by due
// date ascending. Ties deliberately carry no secondary sort key; rows
// with equal due dates arrive in the store's natural order.
func (s *Store) ListOpenTasks(ctx context.Context, owner string, limit int) ([]task.Summary, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, task_text, due_date
		 FROM tasks
		 WHERE user_id = $1 AND completed = FALSE
		 ORDER BY due_date ASC
		 LIMIT $2`, owner, limit)
	if err != nil {
		return nil, fmt.Errorf("list open tasks for %s: %w", owner, err)
	}
	defer rows.Close()

	var tasks []task.Summary
	for rows.Next() {
		var t task.Summary
		var due time.Time
		if err := rows.Scan(&t.ID, &t.Text, &due); err != nil {
			return nil, fmt.Errorf("scan open task: %w", err)
		}
		t.DueDate = due.Format(dateLayout)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// scannable abstracts pgx.Row and pgx.Rows for shared scan helpers.
type scannable interface {
	Scan(dest ...any) error
}

func scanTask(row scannable) (task.Task, error) {
	var t task.Task
	var due time.Time
	var channelID *string
	err := row.Scan(&t.ID, &t.Owner, &t.Text, &due, &t.Creator, &channelID, &t.CreatedAt, &t.Completed)
	if err != nil {
		return task.Task{}, err
	}
	t.DueDate = due.Format(dateLayout)
	if channelID != nil {
		t.OriginChannel = *channelID
	}
	return t, nil
}

// nullIfEmpty returns nil for empty strings (for nullable columns).
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
