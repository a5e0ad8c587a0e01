package sprint

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mohanbhogavarapu07/vsm-backend/internal"
)

// Service manages sprints. Employees reach sprints only through projects they
// are assigned to; unauthorized reads answer "not found".
type Service struct {
	repo     Repository
	projects ProjectAccess
	logger   *slog.Logger
}

func NewService(repo Repository, projects ProjectAccess, logger *slog.Logger) *Service {
	return &Service{repo: repo, projects: projects, logger: logger}
}

// ListByProject returns a project's sprints in id order.
func (s *Service) ListByProject(ctx context.Context, projectID int64, actingEmployeeID *int64) ([]*Sprint, error) {
	if actingEmployeeID != nil && !s.projects.AssignmentExists(ctx, projectID, *actingEmployeeID) {
		return nil, internal.NewNotFoundError("Project not found", internal.ErrCodeProjectNotFound)
	}
	return s.repo.ListByProject(ctx, projectID)
}

func (s *Service) Get(ctx context.Context, id int64, actingEmployeeID *int64) (*Sprint, error) {
	sp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actingEmployeeID != nil && !s.projects.AssignmentExists(ctx, sp.ProjectID, *actingEmployeeID) {
		return nil, internal.NewNotFoundError("Sprint not found", internal.ErrCodeSprintNotFound)
	}
	return sp, nil
}

func (s *Service) Create(ctx context.Context, projectID int64, dto CreateSprintDTO) (*Sprint, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if !s.projects.Exists(ctx, projectID) {
		return nil, internal.NewNotFoundError("Project not found", internal.ErrCodeProjectNotFound)
	}

	created, err := s.repo.Create(ctx, &Sprint{
		ProjectID: projectID,
		Name:      dto.Name,
		StartDate: dto.StartDate,
		EndDate:   dto.EndDate,
		Status:    dto.Status,
	})
	if err != nil {
		s.logger.Error("failed to create sprint", "project_id", projectID, "error", err)
		return nil, err
	}
	s.logger.Info("sprint created", "sprint_id", created.ID, "project_id", projectID, "status", created.Status)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, dto UpdateSprintDTO) (*Sprint, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if dto.Name != nil {
		fields["sprint_name"] = strings.TrimSpace(*dto.Name)
	}
	if dto.StartDate != nil {
		fields["start_date"] = *dto.StartDate
	}
	if dto.EndDate != nil {
		fields["end_date"] = *dto.EndDate
	}
	if dto.Status != nil {
		fields["status"] = *dto.Status
	}
	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	s.logger.Info("sprint updated", "sprint_id", id)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("sprint deleted", "sprint_id", id)
	return nil
}
