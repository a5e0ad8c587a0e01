package supabase

import (
	"context"

	"github.com/mohanbhogavarapu07/vsm-backend/internal"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/backlog"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/postgrest"
)

const backlogTable = "backlog_items"

type Repo struct {
	db *postgrest.Client
}

func NewRepo(db *postgrest.Client) *Repo {
	return &Repo{db: db}
}

func (r *Repo) ListByProject(ctx context.Context, projectID int64) ([]*backlog.Item, error) {
	raw, err := r.db.Select(ctx, backlogTable, postgrest.Query{
		Filters: []postgrest.Filter{postgrest.Eq("project_id", projectID)},
		Order:   []string{"priority", "backlog_item_id"},
	})
	if err != nil {
		return nil, err
	}
	rows, err := postgrest.DecodeRows[backlog.Item](raw)
	if err != nil {
		return nil, err
	}
	items := make([]*backlog.Item, len(rows))
	for i := range rows {
		items[i] = &rows[i]
	}
	return items, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*backlog.Item, error) {
	raw, err := r.db.Select(ctx, backlogTable, postgrest.Query{
		Filters: []postgrest.Filter{postgrest.Eq("backlog_item_id", id)},
		Limit:   1,
	})
	if err != nil {
		return nil, err
	}
	return postgrest.DecodeOne[backlog.Item](raw, "Backlog item", internal.ErrCodeBacklogNotFound)
}

func (r *Repo) Create(ctx context.Context, item *backlog.Item) (*backlog.Item, error) {
	raw, err := r.db.Insert(ctx, backlogTable, map[string]any{
		"project_id":  item.ProjectID,
		"title":       item.Title,
		"description": item.Description,
		"priority":    item.Priority,
	})
	if err != nil {
		return nil, err
	}
	return postgrest.DecodeOne[backlog.Item](raw, "Backlog item", internal.ErrCodeBacklogNotFound)
}

func (r *Repo) Update(ctx context.Context, id int64, fields map[string]any) (*backlog.Item, error) {
	raw, err := r.db.Update(ctx, backlogTable, fields, postgrest.Eq("backlog_item_id", id))
	if err != nil {
		return nil, err
	}
	return postgrest.DecodeOne[backlog.Item](raw, "Backlog item", internal.ErrCodeBacklogNotFound)
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	raw, err := r.db.Delete(ctx, backlogTable, postgrest.Eq("backlog_item_id", id))
	if err != nil {
		return err
	}
	rows, err := postgrest.DecodeRows[backlog.Item](raw)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return internal.NewNotFoundError("Backlog item not found", internal.ErrCodeBacklogNotFound)
	}
	return nil
}
