package supabase

import (
	"context"

	"github.com/mohanbhogavarapu07/vsm-backend/internal"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/postgrest"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/project"
)

const (
	projectsTable    = "projects"
	assignmentsTable = "project_assignments"
)

type Repo struct {
	db *postgrest.Client
}

func NewRepo(db *postgrest.Client) *Repo {
	return &Repo{db: db}
}

func (r *Repo) List(ctx context.Context) ([]*project.Project, error) {
	raw, err := r.db.Select(ctx, projectsTable, postgrest.Query{Order: []string{"project_id"}})
	if err != nil {
		return nil, err
	}
	return decodeProjects(raw)
}

func (r *Repo) ListByIDs(ctx context.Context, ids []int64) ([]*project.Project, error) {
	raw, err := r.db.Select(ctx, projectsTable, postgrest.Query{
		Filters: []postgrest.Filter{postgrest.In("project_id", ids)},
		Order:   []string{"project_id"},
	})
	if err != nil {
		return nil, err
	}
	return decodeProjects(raw)
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*project.Project, error) {
	raw, err := r.db.Select(ctx, projectsTable, postgrest.Query{
		Filters: []postgrest.Filter{postgrest.Eq("project_id", id)},
		Limit:   1,
	})
	if err != nil {
		return nil, err
	}
	return postgrest.DecodeOne[project.Project](raw, "Project", internal.ErrCodeProjectNotFound)
}

func (r *Repo) Exists(ctx context.Context, id int64) bool {
	return r.db.Exists(ctx, projectsTable, "project_id", id)
}

func (r *Repo) Create(ctx context.Context, p *project.Project) (*project.Project, error) {
	raw, err := r.db.Insert(ctx, projectsTable, map[string]any{
		"project_name":        p.Name,
		"description":         p.Description,
		"created_by_admin_id": p.CreatedBy,
		"start_date":          p.StartDate,
		"end_date":            p.EndDate,
	})
	if err != nil {
		return nil, err
	}
	return postgrest.DecodeOne[project.Project](raw, "Project", internal.ErrCodeProjectNotFound)
}

func (r *Repo) Update(ctx context.Context, id int64, fields map[string]any) (*project.Project, error) {
	raw, err := r.db.Update(ctx, projectsTable, fields, postgrest.Eq("project_id", id))
	if err != nil {
		return nil, err
	}
	return postgrest.DecodeOne[project.Project](raw, "Project", internal.ErrCodeProjectNotFound)
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	raw, err := r.db.Delete(ctx, projectsTable, postgrest.Eq("project_id", id))
	if err != nil {
		return err
	}
	rows, err := postgrest.DecodeRows[project.Project](raw)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return internal.NewNotFoundError("Project not found", internal.ErrCodeProjectNotFound)
	}
	return nil
}

// AssignmentForEmployee returns the employee's current assignment, or a
// NOT_FOUND error when they are unassigned.
func (r *Repo) AssignmentForEmployee(ctx context.Context, employeeID int64) (*project.Assignment, error) {
	raw, err := r.db.Select(ctx, assignmentsTable, postgrest.Query{
		Filters: []postgrest.Filter{postgrest.Eq("employee_id", employeeID)},
		Limit:   1,
	})
	if err != nil {
		return nil, err
	}
	return postgrest.DecodeOne[project.Assignment](raw, "Assignment", internal.ErrCodeAssignmentNotFound)
}

func (r *Repo) AssignmentExists(ctx context.Context, projectID, employeeID int64) bool {
	raw, err := r.db.Select(ctx, assignmentsTable, postgrest.Query{
		Columns: "assignment_id",
		Filters: []postgrest.Filter{
			postgrest.Eq("project_id", projectID),
			postgrest.Eq("employee_id", employeeID),
		},
		Limit: 1,
	})
	if err != nil {
		return false
	}
	rows, err := postgrest.DecodeRows[project.Assignment](raw)
	return err == nil && len(rows) > 0
}

func (r *Repo) ProjectIDsForEmployee(ctx context.Context, employeeID int64) ([]int64, error) {
	raw, err := r.db.Select(ctx, assignmentsTable, postgrest.Query{
		Columns: "project_id",
		Filters: []postgrest.Filter{postgrest.Eq("employee_id", employeeID)},
	})
	if err != nil {
		return nil, err
	}
	rows, err := postgrest.DecodeRows[project.Assignment](raw)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ProjectID
	}
	return ids, nil
}

// ListMembers enriches each assignment with the member's user details, one
// lookup per row, matching the original's read pattern.
func (r *Repo) ListMembers(ctx context.Context, projectID int64) ([]*project.Assignment, error) {
	raw, err := r.db.Select(ctx, assignmentsTable, postgrest.Query{
		Filters: []postgrest.Filter{postgrest.Eq("project_id", projectID)},
		Order:   []string{"assignment_id"},
	})
	if err != nil {
		return nil, err
	}
	rows, err := postgrest.DecodeRows[project.Assignment](raw)
	if err != nil {
		return nil, err
	}

	members := make([]*project.Assignment, len(rows))
	for i := range rows {
		a := rows[i]
		userRaw, err := r.db.Select(ctx, "users", postgrest.Query{
			Columns: "full_name, email, role",
			Filters: []postgrest.Filter{postgrest.Eq("user_id", a.EmployeeID)},
			Limit:   1,
		})
		if err == nil {
			if users, derr := postgrest.DecodeRows[project.Member](userRaw); derr == nil && len(users) > 0 {
				a.User = &users[0]
			}
		}
		members[i] = &a
	}
	return members, nil
}

func (r *Repo) CreateAssignment(ctx context.Context, projectID, employeeID int64) (*project.Assignment, error) {
	raw, err := r.db.Insert(ctx, assignmentsTable, map[string]any{
		"project_id":  projectID,
		"employee_id": employeeID,
	})
	if err != nil {
		return nil, err
	}
	return postgrest.DecodeOne[project.Assignment](raw, "Assignment", internal.ErrCodeAssignmentNotFound)
}

func (r *Repo) DeleteAssignment(ctx context.Context, projectID, employeeID int64) error {
	raw, err := r.db.Delete(ctx, assignmentsTable,
		postgrest.Eq("project_id", projectID),
		postgrest.Eq("employee_id", employeeID))
	if err != nil {
		return err
	}
	rows, err := postgrest.DecodeRows[project.Assignment](raw)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return internal.NewNotFoundError("Assignment not found", internal.ErrCodeAssignmentNotFound)
	}
	return nil
}

func decodeProjects(raw []byte) ([]*project.Project, error) {
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
