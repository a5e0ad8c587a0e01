package backlog

import "context"

// Item is a backlog entry scoped to a single project. Priority is a plain
// integer where higher means more urgent.
type Item struct {
	ID          int64   `json:"backlog_item_id"`
	ProjectID   int64   `json:"project_id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Priority    int     `json:"priority"`
	CreatedAt   string  `json:"created_at,omitempty"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
}

type Repository interface {
	ListByProject(ctx context.Context, projectID int64) ([]*Item, error)
	GetByID(ctx context.Context, id int64) (*Item, error)
	Create(ctx context.Context, item *Item) (*Item, error)
	Update(ctx context.Context, id int64, fields map[string]any) (*Item, error)
	Delete(ctx context.Context, id int64) error
}

// ProjectAccess is the slice of the project domain this package needs to
// enforce visibility.
type ProjectAccess interface {
	AssignmentExists(ctx context.Context, projectID, employeeID int64) bool
}
