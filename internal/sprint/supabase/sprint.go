package supabase

import (
	"context"

	"github.com/mohanbhogavarapu07/vsm-backend/internal"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/postgrest"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/sprint"
)

const sprintsTable = "sprints"

type Repo struct {
	db *postgrest.Client
}

func NewRepo(db *postgrest.Client) *Repo {
	return &Repo{db: db}
}

func (r *Repo) ListByProject(ctx context.Context, projectID int64) ([]*sprint.Sprint, error) {
	raw, err := r.db.Select(ctx, sprintsTable, postgrest.Query{
		Filters: []postgrest.Filter{postgrest.Eq("project_id", projectID)},
		Order:   []string{"sprint_id"},
	})
	if err != nil {
		return nil, err
	}
	rows, err := postgrest.DecodeRows[sprint.Sprint](raw)
	if err != nil {
		return nil, err
	}
	sprints := make([]*sprint.Sprint, len(rows))
	for i := range rows {
		sprints[i] = &rows[i]
	}
	return sprints, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*sprint.Sprint, error) {
	raw, err := r.db.Select(ctx, sprintsTable, postgrest.Query{
		Filters: []postgrest.Filter{postgrest.Eq("sprint_id", id)},
		Limit:   1,
	})
	if err != nil {
		return nil, err
	}
	return postgrest.DecodeOne[sprint.Sprint](raw, "Sprint", internal.ErrCodeSprintNotFound)
}

func (r *Repo) Create(ctx context.Context, sp *sprint.Sprint) (*sprint.Sprint, error) {
	raw, err := r.db.Insert(ctx, sprintsTable, map[string]any{
		"project_id":  sp.ProjectID,
		"sprint_name": sp.Name,
		"start_date":  sp.StartDate,
		"end_date":    sp.EndDate,
		"status":      sp.Status,
	})
	if err != nil {
		return nil, err
	}
	return postgrest.DecodeOne[sprint.Sprint](raw, "Sprint", internal.ErrCodeSprintNotFound)
}

func (r *Repo) Update(ctx context.Context, id int64, fields map[string]any) (*sprint.Sprint, error) {
	raw, err := r.db.Update(ctx, sprintsTable, fields, postgrest.Eq("sprint_id", id))
	if err != nil {
		return nil, err
	}
	return postgrest.DecodeOne[sprint.Sprint](raw, "Sprint", internal.ErrCodeSprintNotFound)
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	raw, err := r.db.Delete(ctx, sprintsTable, postgrest.Eq("sprint_id", id))
	if err != nil {
		return err
	}
	rows, err := postgrest.DecodeRows[sprint.Sprint](raw)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return internal.NewNotFoundError("Sprint not found", internal.ErrCodeSprintNotFound)
	}
	return nil
}
