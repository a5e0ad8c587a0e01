package supabase

import (
	"context"

	"github.com/mohanbhogavarapu07/vsm-backend/internal/dashboard"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/performance"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/postgrest"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/project"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/task"
)

// Repo reads across every table the dashboards aggregate over.
type Repo struct {
	db *postgrest.Client
}

func NewRepo(db *postgrest.Client) *Repo {
	return &Repo{db: db}
}

func (r *Repo) CountProjects(ctx context.Context) (int, error) {
	raw, err := r.db.Select(ctx, "projects", postgrest.Query{Columns: "project_id"})
	if err != nil {
		return 0, err
	}
	rows, err := postgrest.DecodeRows[struct {
		ProjectID int64 `json:"project_id"`
	}](raw)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (r *Repo) CountEmployees(ctx context.Context) (int, error) {
	raw, err := r.db.Select(ctx, "users", postgrest.Query{
		Columns: "user_id",
		Filters: []postgrest.Filter{postgrest.Eq("role", "EMPLOYEE")},
	})
	if err != nil {
		return 0, err
	}
	rows, err := postgrest.DecodeRows[struct {
		UserID int64 `json:"user_id"`
	}](raw)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (r *Repo) SprintStatuses(ctx context.Context) ([]string, error) {
	raw, err := r.db.Select(ctx, "sprints", postgrest.Query{Columns: "status"})
	if err != nil {
		return nil, err
	}
	rows, err := postgrest.DecodeRows[struct {
		Status string `json:"status"`
	}](raw)
	if err != nil {
		return nil, err
	}
	statuses := make([]string, len(rows))
	for i, row := range rows {
		statuses[i] = row.Status
	}
	return statuses, nil
}

func (r *Repo) AllTasks(ctx context.Context) ([]*task.Task, error) {
	raw, err := r.db.Select(ctx, "tasks", postgrest.Query{Order: []string{"task_id"}})
	if err != nil {
		return nil, err
	}
	return decodeTasks(raw)
}

func (r *Repo) PerformanceScores(ctx context.Context) ([]dashboard.ScorePair, error) {
	raw, err := r.db.Select(ctx, "performance_logs", postgrest.Query{
		Columns: "accuracy_score, progress_percent",
	})
	if err != nil {
		return nil, err
	}
	return postgrest.DecodeRows[dashboard.ScorePair](raw)
}

func (r *Repo) ProjectIDsForEmployee(ctx context.Context, employeeID int64) ([]int64, error) {
	raw, err := r.db.Select(ctx, "project_assignments", postgrest.Query{
		Columns: "project_id",
		Filters: []postgrest.Filter{postgrest.Eq("employee_id", employeeID)},
	})
	if err != nil {
		return nil, err
	}
	rows, err := postgrest.DecodeRows[struct {
		ProjectID int64 `json:"project_id"`
	}](raw)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ProjectID
	}
	return ids, nil
}

func (r *Repo) ProjectsByIDs(ctx context.Context, ids []int64) ([]*project.Project, error) {
	raw, err := r.db.Select(ctx, "projects", postgrest.Query{
		Filters: []postgrest.Filter{postgrest.In("project_id", ids)},
	})
	if err != nil {
		return nil, err
	}
	rows, err := postgrest.DecodeRows[project.Project](raw)
	if err != nil {
		return nil, err
	}
	out := make([]*project.Project, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out, nil
}

func (r *Repo) TasksForEmployee(ctx context.Context, employeeID int64) ([]*task.Task, error) {
	raw, err := r.db.Select(ctx, "tasks", postgrest.Query{
		Filters: []postgrest.Filter{postgrest.Eq("assigned_to_user_id", employeeID)},
		Order:   []string{"task_id"},
	})
	if err != nil {
		return nil, err
	}
	return decodeTasks(raw)
}

func (r *Repo) PerformanceForUser(ctx context.Context, userID int64) ([]*performance.Log, error) {
	raw, err := r.db.Select(ctx, "performance_logs", postgrest.Query{
		Filters: []postgrest.Filter{postgrest.Eq("user_id", userID)},
		Order:   []string{"log_date"},
	})
	if err != nil {
		return nil, err
	}
	rows, err := postgrest.DecodeRows[performance.Log](raw)
	if err != nil {
		return nil, err
	}
	out := make([]*performance.Log, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out, nil
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
