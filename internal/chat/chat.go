package chat

import (
	"context"

	"github.com/mohanbhogavarapu07/vsm-backend/internal/task"
)

// Sender types for chat rows.
const (
	SenderUser = "USER"
	SenderBot  = "AI_BOT"
)

type ChatLog struct {
	ID         int64  `json:"chat_log_id,omitempty"`
	ProjectID  int64  `json:"project_id"`
	UserID     int64  `json:"user_id"`
	SenderType string `json:"sender_type"`
	Message    string `json:"message"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// AppliedUpdate records one task status change triggered by a chat message.
type AppliedUpdate struct {
	TaskID int64  `json:"task_id"`
	Status string `json:"status"`
}

// SendResult is the payload returned after a message round-trip. AIMessage is
// nil when the bot row could not be stored; the send still counts.
type SendResult struct {
	UserMessage *ChatLog        `json:"user_message"`
	AIMessage   *ChatLog        `json:"ai_message"`
	TaskUpdates []AppliedUpdate `json:"task_updates"`
}

type Repository interface {
	Insert(ctx context.Context, l *ChatLog) (*ChatLog, error)
	ListByProject(ctx context.Context, projectID int64, limit int) ([]*ChatLog, error)
}

// ProjectAccess is the slice of the project domain this package needs to
// enforce visibility.
type ProjectAccess interface {
	Exists(ctx context.Context, projectID int64) bool
	AssignmentExists(ctx context.Context, projectID, employeeID int64) bool
}

// TaskDirectory lets the chat pipeline look up and move tasks referenced in
// messages.
type TaskDirectory interface {
	GetByID(ctx context.Context, id int64) (*task.Task, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*task.Task, error)
}
