package task

import (
	"context"

	"github.com/mohanbhogavarapu07/vsm-backend/internal/sprint"
)

// Task statuses.
const (
	StatusTodo       = "TODO"
	StatusInProgress = "IN_PROGRESS"
	StatusDone       = "DONE"
)

// Statuses is the closed set of valid task states.
var Statuses = []string{StatusTodo, StatusInProgress, StatusDone}

type Task struct {
	ID          int64   `json:"task_id"`
	SprintID    int64   `json:"sprint_id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	Assignee    *int64  `json:"assigned_to_user_id"`
	CreatedAt   string  `json:"created_at,omitempty"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
}

type Repository interface {
	ListBySprint(ctx context.Context, sprintID int64, assignee *int64) ([]*Task, error)
	ListAll(ctx context.Context, assignee *int64) ([]*Task, error)
	GetByID(ctx context.Context, id int64) (*Task, error)
	Create(ctx context.Context, t *Task) (*Task, error)
	Update(ctx context.Context, id int64, fields map[string]any) (*Task, error)
	Delete(ctx context.Context, id int64) error
}

// SprintDirectory resolves a task's sprint, used to walk up to the owning
// project for visibility checks.
type SprintDirectory interface {
	GetByID(ctx context.Context, id int64) (*sprint.Sprint, error)
}

// ProjectAccess is the slice of the project domain this package needs to
// enforce visibility.
type ProjectAccess interface {
	AssignmentExists(ctx context.Context, projectID, employeeID int64) bool
}

// UserDirectory answers whether an assignee exists.
type UserDirectory interface {
	Exists(ctx context.Context, userID int64) bool
}
