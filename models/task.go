package models

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrTaskFieldsRequired = errors.New("client id and title are required")
	ErrEmptyTitle         = errors.New("title cannot be empty")
	ErrTitleTooLong       = errors.New("title is too long")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidPriority    = errors.New("invalid priority")
)

// Status of a task. Done and Completed are both terminal.
type Status string

const (
	StatusPending   Status = "pending"
	StatusDone      Status = "done"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusDone, StatusCompleted:
		return true
	}
	return false
}

// Terminal reports whether the task is finished.
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusCompleted
}

// Priority of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task belongs to a client of the same user. ClientName is only filled by list queries.
type Task struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	ClientID    int64     `json:"client_id" db:"client_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Status      Status    `json:"status" db:"status"`
	Priority    Priority  `json:"priority" db:"priority"`
	DueDate     *Date     `json:"due_date" db:"due_date"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	ClientName  string    `json:"client_name,omitempty" db:"client_name"`
}

// TaskInput is the create payload.
type TaskInput struct {
	ClientID    ID        `json:"client_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Priority    *Priority `json:"priority"`
	DueDate     *Date     `json:"due_date"`
}

// Normalize applies defaults and checks required fields and enums.
func (in *TaskInput) Normalize() error {
	if in.ClientID <= 0 || in.Title == "" {
		return ErrTaskFieldsRequired
	}
	if TooLong(in.Title) {
		return ErrTitleTooLong
	}
	if in.DueDate != nil && in.DueDate.IsZero() {
		in.DueDate = nil
	}
	if in.Description == nil {
		empty := ""
		in.Description = &empty
	}
	if in.Priority == nil || *in.Priority == "" {
		p := PriorityMedium
		in.Priority = &p
	}
	if !in.Priority.Valid() {
		return fmt.Errorf("%w %q", ErrInvalidPriority, *in.Priority)
	}
	return nil
}

// TaskUpdate holds the fields of a merge update; nil means keep the stored value.
type TaskUpdate struct {
	Title       *string   `json:"title"`
	Status      *Status   `json:"status"`
	Description *string   `json:"description"`
	Priority    *Priority `json:"priority"`
	DueDate     *Date     `json:"due_date"`
}

// Normalize drops an empty due date and rejects empty titles and unknown enum values.
func (in *TaskUpdate) Normalize() error {
	if in.DueDate != nil && in.DueDate.IsZero() {
		in.DueDate = nil
	}
	if in.Title != nil {
		if *in.Title == "" {
			return ErrEmptyTitle
		}
		if TooLong(*in.Title) {
			return ErrTitleTooLong
		}
	}
	if in.Status != nil && !in.Status.Valid() {
		return fmt.Errorf("%w %q", ErrInvalidStatus, *in.Status)
	}
	if in.Priority != nil && !in.Priority.Valid() {
		return fmt.Errorf("%w %q", ErrInvalidPriority, *in.Priority)
	}
	return nil
}
