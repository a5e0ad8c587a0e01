package supabase

import (
	"context"

	"github.com/mohanbhogavarapu07/vsm-backend/internal"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/chat"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/postgrest"
)

const chatTable = "chat_logs"

type Repo struct {
	db *postgrest.Client
}

func NewRepo(db *postgrest.Client) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Insert(ctx context.Context, l *chat.ChatLog) (*chat.ChatLog, error) {
	raw, err := r.db.Insert(ctx, chatTable, map[string]any{
		"project_id":  l.ProjectID,
		"user_id":     l.UserID,
		"sender_type": l.SenderType,
		"message":     l.Message,
	})
	if err != nil {
		return nil, err
	}
	return postgrest.DecodeOne[chat.ChatLog](raw, "Chat log", internal.ErrCodeChatLogNotFound)
}

func (r *Repo) ListByProject(ctx context.Context, projectID int64, limit int) ([]*chat.ChatLog, error) {
	raw, err := r.db.Select(ctx, chatTable, postgrest.Query{
		Filters: []postgrest.Filter{postgrest.Eq("project_id", projectID)},
		Order:   []string{"created_at"},
		Limit:   limit,
	})
	if err != nil {
		return nil, err
	}
	rows, err := postgrest.DecodeRows[chat.ChatLog](raw)
	if err != nil {
		return nil, err
	}
	logs := make([]*chat.ChatLog, len(rows))
	for i := range rows {
		logs[i] = &rows[i]
	}
	return logs, nil
}
