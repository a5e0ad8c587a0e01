package backlog

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mohanbhogavarapu07/vsm-backend/internal"
)

// Service manages backlog items. Employees reach a project's backlog only
// through their own assignment; unauthorized reads answer "not found".
type Service struct {
	repo     Repository
	projects ProjectAccess
	logger   *slog.Logger
}

func NewService(repo Repository, projects ProjectAccess, logger *slog.Logger) *Service {
	return &Service{repo: repo, projects: projects, logger: logger}
}

// ListByProject returns a project's backlog ordered by priority. Employees
// without an assignment to the project get "not found" rather than a list.
func (s *Service) ListByProject(ctx context.Context, projectID int64, actingEmployeeID *int64) ([]*Item, error) {
	if actingEmployeeID != nil && !s.projects.AssignmentExists(ctx, projectID, *actingEmployeeID) {
		return nil, internal.NewNotFoundError("Project not found", internal.ErrCodeProjectNotFound)
	}
	return s.repo.ListByProject(ctx, projectID)
}

func (s *Service) Create(ctx context.Context, projectID int64, dto CreateItemDTO) (*Item, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	item := &Item{
		ProjectID:   projectID,
		Title:       dto.Title,
		Description: trimmedOrNil(dto.Description),
	}
	if dto.Priority != nil {
		item.Priority = *dto.Priority
	}
	created, err := s.repo.Create(ctx, item)
	if err != nil {
		s.logger.Error("failed to create backlog item", "project_id", projectID, "error", err)
		return nil, err
	}
	s.logger.Info("backlog item created", "backlog_item_id", created.ID, "project_id", projectID)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, dto UpdateItemDTO, actingEmployeeID *int64) (*Item, error) {
	if dto.Empty() {
		return nil, internal.ErrNoValidFields
	}
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actingEmployeeID != nil && !s.projects.AssignmentExists(ctx, item.ProjectID, *actingEmployeeID) {
		return nil, internal.NewNotFoundError("Backlog item not found", internal.ErrCodeBacklogNotFound)
	}

	fields := map[string]any{}
	if dto.Title != nil {
		fields["title"] = strings.TrimSpace(*dto.Title)
	}
	if dto.Description != nil {
		fields["description"] = trimmedOrNil(dto.Description)
	}
	if dto.Priority != nil {
		fields["priority"] = *dto.Priority
	}
	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	s.logger.Info("backlog item updated", "backlog_item_id", id)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("backlog item deleted", "backlog_item_id", id)
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
