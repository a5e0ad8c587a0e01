package chat

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mohanbhogavarapu07/vsm-backend/internal"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

// Service runs the chat pipeline: store the user's message, apply keyword
// driven task updates, store the bot reply. The three writes are independent;
// a failed bot write still counts as a successful send.
type Service struct {
	repo     Repository
	projects ProjectAccess
	tasks    TaskDirectory
	logger   *slog.Logger
}

func NewService(repo Repository, projects ProjectAccess, tasks TaskDirectory, logger *slog.Logger) *Service {
	return &Service{repo: repo, projects: projects, tasks: tasks, logger: logger}
}

func (s *Service) checkProjectAccess(ctx context.Context, projectID, userID int64, isAdmin bool) error {
	if isAdmin {
		if !s.projects.Exists(ctx, projectID) {
			return internal.NewNotFoundError("Project not found", internal.ErrCodeProjectNotFound)
		}
		return nil
	}
	if !s.projects.AssignmentExists(ctx, projectID, userID) {
		return internal.NewNotFoundError("Project not found", internal.ErrCodeProjectNotFound)
	}
	return nil
}

// SendMessage stores the user's message, applies any task updates it implies,
// and answers with the bot reply. Task updates only apply to tasks assigned
// to the sender; anything else is skipped without comment.
func (s *Service) SendMessage(ctx context.Context, projectID, userID int64, message string, isAdmin bool) (*SendResult, error) {
	if err := s.checkProjectAccess(ctx, projectID, userID, isAdmin); err != nil {
		return nil, err
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, internal.NewValidationError("message is required", internal.ErrCodeValidationFailed)
	}

	userRow, err := s.repo.Insert(ctx, &ChatLog{
		ProjectID:  projectID,
		UserID:     userID,
		SenderType: SenderUser,
		Message:    message,
	})
	if err != nil {
		return nil, err
	}

	applied := []AppliedUpdate{}
	for _, u := range extractTaskUpdates(message) {
		t, err := s.tasks.GetByID(ctx, u.taskID)
		if err != nil {
			continue
		}
		if t.Assignee == nil || *t.Assignee != userID {
			continue
		}
		if _, err := s.tasks.UpdateStatus(ctx, u.taskID, u.status); err != nil {
			s.logger.Warn("chat task update failed", "task_id", u.taskID, "status", u.status, "error", err)
			continue
		}
		applied = append(applied, AppliedUpdate{TaskID: u.taskID, Status: u.status})
	}

	aiRow, err := s.repo.Insert(ctx, &ChatLog{
		ProjectID:  projectID,
		UserID:     userID,
		SenderType: SenderBot,
		Message:    generateReply(message),
	})
	if err != nil {
		s.logger.Warn("failed to store bot reply", "project_id", projectID, "error", err)
		aiRow = nil
	}

	s.logger.Info("chat message processed",
		"project_id", projectID, "user_id", userID, "task_updates", len(applied))
	return &SendResult{UserMessage: userRow, AIMessage: aiRow, TaskUpdates: applied}, nil
}

// ListProject returns a project's chat history in chronological order.
func (s *Service) ListProject(ctx context.Context, projectID, userID int64, isAdmin bool, limit int) ([]*ChatLog, error) {
	if err := s.checkProjectAccess(ctx, projectID, userID, isAdmin); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.repo.ListByProject(ctx, projectID, limit)
}
