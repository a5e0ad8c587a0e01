package project

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mohanbhogavarapu07/vsm-backend/internal"
)

// Service orchestrates project CRUD and assignment transfers. Employees only
// see projects reachable through their own assignment row; unauthorized reads
// answer "not found" so existence is never leaked.
type Service struct {
	repo   Repository
	users  UserDirectory
	logger *slog.Logger
}

func NewService(repo Repository, users UserDirectory, logger *slog.Logger) *Service {
	return &Service{repo: repo, users: users, logger: logger}
}

// List returns all projects for admins, or only the assigned ones when
// actingEmployeeID is set.
func (s *Service) List(ctx context.Context, actingEmployeeID *int64) ([]*Project, error) {
	if actingEmployeeID == nil {
		return s.repo.List(ctx)
	}
	ids, err := s.repo.ProjectIDsForEmployee(ctx, *actingEmployeeID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*Project{}, nil
	}
	return s.repo.ListByIDs(ctx, ids)
}

func (s *Service) Get(ctx context.Context, id int64, actingEmployeeID *int64) (*Project, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actingEmployeeID != nil && !s.repo.AssignmentExists(ctx, id, *actingEmployeeID) {
		return nil, internal.NewNotFoundError("Project not found", internal.ErrCodeProjectNotFound)
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, dto CreateProjectDTO) (*Project, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if !s.users.Exists(ctx, *dto.CreatedBy) {
		return nil, internal.NewNotFoundError("User not found", internal.ErrCodeUserNotFound)
	}

	p := &Project{
		Name:        dto.Name,
		Description: trimmedOrNil(dto.Description),
		CreatedBy:   *dto.CreatedBy,
		StartDate:   dto.StartDate,
		EndDate:     dto.EndDate,
	}
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		s.logger.Error("failed to create project", "error", err)
		return nil, err
	}
	s.logger.Info("project created", "project_id", created.ID, "created_by", created.CreatedBy)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, dto UpdateProjectDTO) (*Project, error) {
	if dto.Empty() {
		return nil, internal.ErrNoValidFields
	}
	fields := map[string]any{}
	if dto.Name != nil {
		fields["project_name"] = strings.TrimSpace(*dto.Name)
	}
	if dto.Description != nil {
		fields["description"] = trimmedOrNil(dto.Description)
	}
	if dto.StartDate != nil {
		fields["start_date"] = *dto.StartDate
	}
	if dto.EndDate != nil {
		fields["end_date"] = *dto.EndDate
	}
	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	s.logger.Info("project updated", "project_id", id)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("project deleted", "project_id", id)
	return nil
}

// ListMembers returns a project's assignment rows with user details.
func (s *Service) ListMembers(ctx context.Context, projectID int64) ([]*Assignment, error) {
	return s.repo.ListMembers(ctx, projectID)
}

// Assign binds one employee to the project. An employee already assigned
// elsewhere is transferred: the old row is deleted before the insert.
// Re-assigning to the same project is a conflict on this path.
func (s *Service) Assign(ctx context.Context, projectID, employeeID int64) (*Assignment, error) {
	if !s.repo.Exists(ctx, projectID) {
		return nil, internal.NewNotFoundError("Project not found", internal.ErrCodeProjectNotFound)
	}
	if !s.users.Exists(ctx, employeeID) {
		return nil, internal.NewNotFoundError("User not found", internal.ErrCodeUserNotFound)
	}

	if existing, err := s.repo.AssignmentForEmployee(ctx, employeeID); err == nil && existing != nil {
		if existing.ProjectID == projectID {
			return nil, internal.NewConflictError("Employee is already assigned to this project", internal.ErrCodeAlreadyAssigned)
		}
		if err := s.repo.DeleteAssignment(ctx, existing.ProjectID, employeeID); err != nil {
			s.logger.Warn("failed to remove prior assignment during transfer",
				"employee_id", employeeID, "old_project_id", existing.ProjectID, "error", err)
		} else {
			s.logger.Info("employee transferred between projects",
				"employee_id", employeeID, "from", existing.ProjectID, "to", projectID)
		}
	}

	created, err := s.repo.CreateAssignment(ctx, projectID, employeeID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("employee assigned", "project_id", projectID, "employee_id", employeeID)
	return created, nil
}

// BulkAssignResult reports what a batch assign actually did.
type BulkAssignResult struct {
	Assignments []*Assignment
	Skipped     bool // at least one employee was already in this project
	Errors      []string
}

// AssignMany assigns a batch of employees. Unlike Assign, an employee already
// in this project is silently skipped rather than rejected.
func (s *Service) AssignMany(ctx context.Context, projectID int64, employeeIDs []int64) (*BulkAssignResult, error) {
	if !s.repo.Exists(ctx, projectID) {
		return nil, internal.NewNotFoundError("Project not found", internal.ErrCodeProjectNotFound)
	}

	result := &BulkAssignResult{Assignments: []*Assignment{}}
	for _, eid := range employeeIDs {
		if !s.users.Exists(ctx, eid) {
			result.Errors = append(result.Errors, fmt.Sprintf("User %d not found", eid))
			continue
		}

		if existing, err := s.repo.AssignmentForEmployee(ctx, eid); err == nil && existing != nil {
			if existing.ProjectID == projectID {
				result.Skipped = true
				continue
			}
			if err := s.repo.DeleteAssignment(ctx, existing.ProjectID, eid); err != nil {
				s.logger.Warn("failed to remove prior assignment during transfer",
					"employee_id", eid, "old_project_id", existing.ProjectID, "error", err)
			}
		}

		created, err := s.repo.CreateAssignment(ctx, projectID, eid)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Employee %d: %v", eid, err))
			continue
		}
		result.Assignments = append(result.Assignments, created)
	}

	if len(result.Errors) > 0 && len(result.Assignments) == 0 && !result.Skipped {
		return nil, internal.NewNotFoundError(strings.Join(result.Errors, "; "), internal.ErrCodeUserNotFound)
	}
	return result, nil
}

// RemoveMember deletes an assignment row.
func (s *Service) RemoveMember(ctx context.Context, projectID, userID int64) error {
	if err := s.repo.DeleteAssignment(ctx, projectID, userID); err != nil {
		return err
	}
	s.logger.Info("member removed", "project_id", projectID, "user_id", userID)
	return nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
