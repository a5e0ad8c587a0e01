package supabase

import (
	"context"

	"github.com/mohanbhogavarapu07/vsm-backend/internal"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/performance"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/postgrest"
)

const logsTable = "performance_logs"

type Repo struct {
	db *postgrest.Client
}

func NewRepo(db *postgrest.Client) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, l *performance.Log) (*performance.Log, error) {
	payload := map[string]any{
		"user_id": l.UserID,
		"task_id": l.TaskID,
	}
	if l.AccuracyScore != nil {
		payload["accuracy_score"] = *l.AccuracyScore
	}
	if l.ProgressPercent != nil {
		payload["progress_percent"] = *l.ProgressPercent
	}
	if l.LogDate != nil {
		payload["log_date"] = *l.LogDate
	}
	raw, err := r.db.Insert(ctx, logsTable, payload)
	if err != nil {
		return nil, err
	}
	return postgrest.DecodeOne[performance.Log](raw, "Performance log", internal.ErrCodePerfLogNotFound)
}

func (r *Repo) ListByUser(ctx context.Context, userID int64) ([]*performance.Log, error) {
	raw, err := r.db.Select(ctx, logsTable, postgrest.Query{
		Filters: []postgrest.Filter{postgrest.Eq("user_id", userID)},
		Order:   []string{"log_date"},
	})
	if err != nil {
		return nil, err
	}
	return decodeLogs(raw)
}

// ListByProject fans out project -> sprints -> tasks -> logs, mirroring the
// datastore's lack of joins across these tables.
func (r *Repo) ListByProject(ctx context.Context, projectID int64) ([]*performance.Log, error) {
	sprintsRaw, err := r.db.Select(ctx, "sprints", postgrest.Query{
		Columns: "sprint_id",
		Filters: []postgrest.Filter{postgrest.Eq("project_id", projectID)},
	})
	if err != nil {
		return nil, err
	}
	type sprintRef struct {
		SprintID int64 `json:"sprint_id"`
	}
	sprints, err := postgrest.DecodeRows[sprintRef](sprintsRaw)
	if err != nil {
		return nil, err
	}
	if len(sprints) == 0 {
		return []*performance.Log{}, nil
	}
	sprintIDs := make([]int64, len(sprints))
	for i, s := range sprints {
		sprintIDs[i] = s.SprintID
	}

	tasksRaw, err := r.db.Select(ctx, "tasks", postgrest.Query{
		Columns: "task_id",
		Filters: []postgrest.Filter{postgrest.In("sprint_id", sprintIDs)},
	})
	if err != nil {
		return nil, err
	}
	type taskRef struct {
		TaskID int64 `json:"task_id"`
	}
	tasks, err := postgrest.DecodeRows[taskRef](tasksRaw)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return []*performance.Log{}, nil
	}
	taskIDs := make([]int64, len(tasks))
	for i, t := range tasks {
		taskIDs[i] = t.TaskID
	}

	raw, err := r.db.Select(ctx, logsTable, postgrest.Query{
		Filters: []postgrest.Filter{postgrest.In("task_id", taskIDs)},
		Order:   []string{"log_date"},
	})
	if err != nil {
		return nil, err
	}
	return decodeLogs(raw)
}

func decodeLogs(raw []byte) ([]*performance.Log, error) {
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
