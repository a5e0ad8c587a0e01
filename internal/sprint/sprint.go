package sprint

import "context"

// Sprint lifecycle states.
const (
	StatusPlanned   = "PLANNED"
	StatusActive    = "ACTIVE"
	StatusCompleted = "COMPLETED"
)

// Statuses is the closed set of valid sprint states.
var Statuses = []string{StatusPlanned, StatusActive, StatusCompleted}

type Sprint struct {
	ID        int64   `json:"sprint_id"`
	ProjectID int64   `json:"project_id"`
	Name      string  `json:"sprint_name"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"created_at,omitempty"`
	UpdatedAt string  `json:"updated_at,omitempty"`
}

type Repository interface {
	ListByProject(ctx context.Context, projectID int64) ([]*Sprint, error)
	GetByID(ctx context.Context, id int64) (*Sprint, error)
	Create(ctx context.Context, sp *Sprint) (*Sprint, error)
	Update(ctx context.Context, id int64, fields map[string]any) (*Sprint, error)
	Delete(ctx context.Context, id int64) error
}

// ProjectAccess is the slice of the project domain this package needs to
// enforce visibility.
type ProjectAccess interface {
	Exists(ctx context.Context, projectID int64) bool
	AssignmentExists(ctx context.Context, projectID, employeeID int64) bool
}
