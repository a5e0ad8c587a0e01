package performance

import (
	"context"
	"log/slog"

	"github.com/mohanbhogavarapu07/vsm-backend/internal"
)

// Service records and reads performance logs. Creation is an admin concern;
// employees may only read their own history.
type Service struct {
	repo   Repository
	users  UserDirectory
	tasks  TaskDirectory
	logger *slog.Logger
}

func NewService(repo Repository, users UserDirectory, tasks TaskDirectory, logger *slog.Logger) *Service {
	return &Service{repo: repo, users: users, tasks: tasks, logger: logger}
}

func (s *Service) Create(ctx context.Context, dto CreateLogDTO) (*Log, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if !s.users.Exists(ctx, *dto.UserID) {
		return nil, internal.NewNotFoundError("User not found", internal.ErrCodeUserNotFound)
	}
	if !s.tasks.Exists(ctx, *dto.TaskID) {
		return nil, internal.NewNotFoundError("Task not found", internal.ErrCodeTaskNotFound)
	}

	created, err := s.repo.Create(ctx, &Log{
		UserID:          *dto.UserID,
		TaskID:          *dto.TaskID,
		AccuracyScore:   dto.AccuracyScore,
		ProgressPercent: dto.ProgressPercent,
		LogDate:         dto.LogDate,
	})
	if err != nil {
		s.logger.Error("failed to create performance log", "user_id", *dto.UserID, "task_id", *dto.TaskID, "error", err)
		return nil, err
	}
	s.logger.Info("performance log created", "user_id", created.UserID, "task_id", created.TaskID)
	return created, nil
}

// ListByUser returns a user's logs in date order. Employees may only request
// their own.
func (s *Service) ListByUser(ctx context.Context, userID int64, actingEmployeeID *int64) ([]*Log, error) {
	if actingEmployeeID != nil && *actingEmployeeID != userID {
		return nil, internal.NewForbiddenError("Access denied", internal.ErrCodeAccessDenied)
	}
	return s.repo.ListByUser(ctx, userID)
}

// ListByProject returns every log attached to the project's tasks.
func (s *Service) ListByProject(ctx context.Context, projectID int64) ([]*Log, error) {
	return s.repo.ListByProject(ctx, projectID)
}
