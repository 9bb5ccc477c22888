package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/biosecret/go-taskmanager/models"
)

const taskColumns = `id, user_id, client_id, title, description, status, priority, due_date, created_at`

const taskWithClientColumns = `t.id, t.user_id, t.client_id, t.title, t.description, t.status, t.priority, t.due_date, t.created_at,
	c.name AS client_name`

// TaskStore reads and writes the tasks table. Every query is scoped by user_id.
type TaskStore struct {
	db *sqlx.DB
}

func NewTaskStore(db *sqlx.DB) *TaskStore {
	return &TaskStore{db: db}
}

// Create inserts a pending task. The insert selects from the caller's own
// client, so a missing or foreign client inserts nothing and returns ErrNotFound.
func (s *TaskStore) Create(ctx context.Context, userID int64, in models.TaskInput) (*models.Task, error) {
	var task models.Task
	err := s.db.GetContext(ctx, &task,
		`INSERT INTO tasks (user_id, client_id, title, description, status, priority, due_date)
		 SELECT c.user_id, c.id, $3::text, $4::text, $5::text, $6::text, $7::date
		 FROM clients c
		 WHERE c.id = $2 AND c.user_id = $1
		 RETURNING `+taskColumns,
		userID, int64(in.ClientID), in.Title, in.Description, models.StatusPending, in.Priority, in.DueDate,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return &task, nil
}

// List returns the user's tasks joined with their client name, newest first.
// A non-nil clientID narrows the result to that client.
func (s *TaskStore) List(ctx context.Context, userID int64, clientID *int64) ([]models.Task, error) {
	tasks := []models.Task{}
	var err error
	if clientID != nil {
		err = s.db.SelectContext(ctx, &tasks,
			`SELECT `+taskWithClientColumns+`
			 FROM tasks t
			 JOIN clients c ON t.client_id = c.id
			 WHERE t.client_id = $1 AND t.user_id = $2
			 ORDER BY t.created_at DESC, t.id DESC`,
			*clientID, userID,
		)
	} else {
		err = s.db.SelectContext(ctx, &tasks,
			`SELECT `+taskWithClientColumns+`
			 FROM tasks t
			 JOIN clients c ON t.client_id = c.id
			 WHERE t.user_id = $1
			 ORDER BY t.created_at DESC, t.id DESC`,
			userID,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("select tasks: %w", err)
	}
	return tasks, nil
}

// Update merges the supplied fields in a single conditional statement.
// A missing or foreign task returns ErrNotFound.
func (s *TaskStore) Update(ctx context.Context, userID, taskID int64, in models.TaskUpdate) (*models.Task, error) {
	var task models.Task
	err := s.db.GetContext(ctx, &task,
		`UPDATE tasks
		 SET title = COALESCE($1, title),
		     status = COALESCE($2, status),
		     description = COALESCE($3, description),
		     priority = COALESCE($4, priority),
		     due_date = COALESCE($5::date, due_date)
		 WHERE id = $6 AND user_id = $7
		 RETURNING `+taskColumns,
		in.Title, in.Status, in.Description, in.Priority, in.DueDate, taskID, userID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return &task, nil
}

// Delete returns ErrNotFound when the task is missing or foreign.
func (s *TaskStore) Delete(ctx context.Context, userID, taskID int64) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`,
		taskID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("count deleted task: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
