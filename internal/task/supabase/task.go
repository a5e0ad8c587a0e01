package supabase

import (
	"context"

	"github.com/mohanbhogavarapu07/vsm-backend/internal"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/postgrest"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/task"
)

const tasksTable = "tasks"

type Repo struct {
	db *postgrest.Client
}

func NewRepo(db *postgrest.Client) *Repo {
	return &Repo{db: db}
}

func (r *Repo) ListBySprint(ctx context.Context, sprintID int64, assignee *int64) ([]*task.Task, error) {
	filters := []postgrest.Filter{postgrest.Eq("sprint_id", sprintID)}
	if assignee != nil {
		filters = append(filters, postgrest.Eq("assigned_to_user_id", *assignee))
	}
	raw, err := r.db.Select(ctx, tasksTable, postgrest.Query{
		Filters: filters,
		Order:   []string{"task_id"},
	})
	if err != nil {
		return nil, err
	}
	return decodeTasks(raw)
}

func (r *Repo) ListAll(ctx context.Context, assignee *int64) ([]*task.Task, error) {
	q := postgrest.Query{Order: []string{"task_id"}}
	if assignee != nil {
		q.Filters = []postgrest.Filter{postgrest.Eq("assigned_to_user_id", *assignee)}
	}
	raw, err := r.db.Select(ctx, tasksTable, q)
	if err != nil {
		return nil, err
	}
	return decodeTasks(raw)
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*task.Task, error) {
	raw, err := r.db.Select(ctx, tasksTable, postgrest.Query{
		Filters: []postgrest.Filter{postgrest.Eq("task_id", id)},
		Limit:   1,
	})
	if err != nil {
		return nil, err
	}
	return postgrest.DecodeOne[task.Task](raw, "Task", internal.ErrCodeTaskNotFound)
}

func (r *Repo) Create(ctx context.Context, t *task.Task) (*task.Task, error) {
	payload := map[string]any{
		"sprint_id":   t.SprintID,
		"title":       t.Title,
		"description": t.Description,
		"status":      t.Status,
	}
	if t.Assignee != nil {
		payload["assigned_to_user_id"] = *t.Assignee
	}
	raw, err := r.db.Insert(ctx, tasksTable, payload)
	if err != nil {
		return nil, err
	}
	return postgrest.DecodeOne[task.Task](raw, "Task", internal.ErrCodeTaskNotFound)
}

func (r *Repo) Update(ctx context.Context, id int64, fields map[string]any) (*task.Task, error) {
	raw, err := r.db.Update(ctx, tasksTable, fields, postgrest.Eq("task_id", id))
	if err != nil {
		return nil, err
	}
	return postgrest.DecodeOne[task.Task](raw, "Task", internal.ErrCodeTaskNotFound)
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	raw, err := r.db.Delete(ctx, tasksTable, postgrest.Eq("task_id", id))
	if err != nil {
		return err
	}
	rows, err := postgrest.DecodeRows[task.Task](raw)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return internal.NewNotFoundError("Task not found", internal.ErrCodeTaskNotFound)
	}
	return nil
}

// Exists reports whether a task row with the given id is present.
func (r *Repo) Exists(ctx context.Context, id int64) bool {
	return r.db.Exists(ctx, tasksTable, "task_id", id)
}

// UpdateStatus is a convenience for callers that only flip the status column.
func (r *Repo) UpdateStatus(ctx context.Context, id int64, status string) (*task.Task, error) {
	return r.Update(ctx, id, map[string]any{"status": status})
}

func decodeTasks(raw []byte) ([]*task.Task, error) {
	rows, err := postgrest.DecodeRows[task.Task](raw)
	if err != nil {
		return nil, err
	}
	out := make([]*task.Task, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out, nil
}
