package performance

import "context"

// Log is one performance measurement for a user on a task. Both score fields
// are optional; absent means not measured that day.
type Log struct {
	ID              int64    `json:"performance_log_id,omitempty"`
	UserID          int64    `json:"user_id"`
	TaskID          int64    `json:"task_id"`
	AccuracyScore   *float64 `json:"accuracy_score"`
	ProgressPercent *float64 `json:"progress_percent"`
	LogDate         *string  `json:"log_date"`
	CreatedAt       string   `json:"created_at,omitempty"`
}

type Repository interface {
	Create(ctx context.Context, l *Log) (*Log, error)
	ListByUser(ctx context.Context, userID int64) ([]*Log, error)
	ListByProject(ctx context.Context, projectID int64) ([]*Log, error)
}

// UserDirectory answers whether a user exists.
type UserDirectory interface {
	Exists(ctx context.Context, userID int64) bool
}

// TaskDirectory answers whether a task exists.
type TaskDirectory interface {
	Exists(ctx context.Context, taskID int64) bool
}
