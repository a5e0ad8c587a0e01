package project

import "context"

// Project mirrors the projects table.
type Project struct {
	ID          int64   `json:"project_id"`
	Name        string  `json:"project_name"`
	Description *string `json:"description"`
	CreatedBy   int64   `json:"created_by_admin_id"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	CreatedAt   string  `json:"created_at,omitempty"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
}

// Assignment binds one employee to at most one project.
type Assignment struct {
	ID         int64   `json:"assignment_id"`
	ProjectID  int64   `json:"project_id"`
	EmployeeID int64   `json:"employee_id"`
	User       *Member `json:"user,omitempty"`
}

// Member is the user detail attached to a membership listing.
type Member struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type Repository interface {
	List(ctx context.Context) ([]*Project, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*Project, error)
	GetByID(ctx context.Context, id int64) (*Project, error)
	Exists(ctx context.Context, id int64) bool
	Create(ctx context.Context, p *Project) (*Project, error)
	Update(ctx context.Context, id int64, fields map[string]any) (*Project, error)
	Delete(ctx context.Context, id int64) error

	AssignmentForEmployee(ctx context.Context, employeeID int64) (*Assignment, error)
	AssignmentExists(ctx context.Context, projectID, employeeID int64) bool
	ProjectIDsForEmployee(ctx context.Context, employeeID int64) ([]int64, error)
	ListMembers(ctx context.Context, projectID int64) ([]*Assignment, error)
	CreateAssignment(ctx context.Context, projectID, employeeID int64) (*Assignment, error)
	DeleteAssignment(ctx context.Context, projectID, employeeID int64) error
}

// UserDirectory is the slice of the user store assignment checks need.
type UserDirectory interface {
	Exists(ctx context.Context, id int64) bool
}
