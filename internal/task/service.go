package task

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mohanbhogavarapu07/vsm-backend/internal"
)

// Service manages tasks. Admins see every task; employees see only tasks
// assigned to them, and reads of anyone else's task answer "not found".
type Service struct {
	repo     Repository
	sprints  SprintDirectory
	projects ProjectAccess
	users    UserDirectory
	logger   *slog.Logger
}

func NewService(repo Repository, sprints SprintDirectory, projects ProjectAccess, users UserDirectory, logger *slog.Logger) *Service {
	return &Service{repo: repo, sprints: sprints, projects: projects, users: users, logger: logger}
}

// ListBySprint returns a sprint's tasks in id order. Employees must be
// assigned to the sprint's project and only see their own tasks.
func (s *Service) ListBySprint(ctx context.Context, sprintID int64, actingEmployeeID *int64) ([]*Task, error) {
	if actingEmployeeID != nil {
		sp, err := s.sprints.GetByID(ctx, sprintID)
		if err != nil {
			return nil, internal.NewNotFoundError("Sprint not found", internal.ErrCodeSprintNotFound)
		}
		if !s.projects.AssignmentExists(ctx, sp.ProjectID, *actingEmployeeID) {
			return nil, internal.NewNotFoundError("Sprint not found", internal.ErrCodeSprintNotFound)
		}
	}
	return s.repo.ListBySprint(ctx, sprintID, actingEmployeeID)
}

// ListAll returns every task for admins, or only the caller's tasks when
// actingEmployeeID is set.
func (s *Service) ListAll(ctx context.Context, actingEmployeeID *int64) ([]*Task, error) {
	return s.repo.ListAll(ctx, actingEmployeeID)
}

func (s *Service) Get(ctx context.Context, id int64, actingEmployeeID *int64) (*Task, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actingEmployeeID != nil && (t.Assignee == nil || *t.Assignee != *actingEmployeeID) {
		return nil, internal.NewNotFoundError("Task not found", internal.ErrCodeTaskNotFound)
	}
	return t, nil
}

func (s *Service) Create(ctx context.Context, sprintID int64, dto CreateTaskDTO) (*Task, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.sprints.GetByID(ctx, sprintID); err != nil {
		return nil, internal.NewNotFoundError("Sprint not found", internal.ErrCodeSprintNotFound)
	}
	if dto.Assignee != nil && !s.users.Exists(ctx, *dto.Assignee) {
		return nil, internal.NewNotFoundError("User not found", internal.ErrCodeUserNotFound)
	}

	created, err := s.repo.Create(ctx, &Task{
		SprintID:    sprintID,
		Title:       dto.Title,
		Description: trimmedOrNil(dto.Description),
		Status:      dto.Status,
		Assignee:    dto.Assignee,
	})
	if err != nil {
		s.logger.Error("failed to create task", "sprint_id", sprintID, "error", err)
		return nil, err
	}
	s.logger.Info("task created", "task_id", created.ID, "sprint_id", sprintID, "status", created.Status)
	return created, nil
}

// Update edits a task. An employee may only touch their own task and never
// the assignment field.
func (s *Service) Update(ctx context.Context, id int64, dto UpdateTaskDTO, actingEmployeeID *int64) (*Task, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if dto.Assignee != nil && actingEmployeeID != nil {
		return nil, internal.NewForbiddenError("Only admin can change assignment", internal.ErrCodeAccessDenied)
	}
	if _, err := s.Get(ctx, id, actingEmployeeID); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if dto.Title != nil {
		fields["title"] = strings.TrimSpace(*dto.Title)
	}
	if dto.Description != nil {
		fields["description"] = trimmedOrNil(dto.Description)
	}
	if dto.Status != nil {
		fields["status"] = *dto.Status
	}
	if dto.Assignee != nil {
		if !s.users.Exists(ctx, *dto.Assignee) {
			return nil, internal.NewNotFoundError("User not found", internal.ErrCodeUserNotFound)
		}
		fields["assigned_to_user_id"] = *dto.Assignee
	}
	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	s.logger.Info("task updated", "task_id", id)
	return updated, nil
}

// UpdateStatus is the status-only update path.
func (s *Service) UpdateStatus(ctx context.Context, id int64, dto UpdateStatusDTO, actingEmployeeID *int64) (*Task, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	return s.Update(ctx, id, UpdateTaskDTO{Status: &dto.Status}, actingEmployeeID)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("task deleted", "task_id", id)
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
