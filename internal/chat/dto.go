package chat

import (
	"strings"

	"github.com/mohanbhogavarapu07/vsm-backend/internal"
)

type SendMessageDTO struct {
	ProjectID *int64 `json:"project_id"`
	Message   string `json:"message"`
}

func (d *SendMessageDTO) Validate() error {
	var missing []string
	if d.ProjectID == nil {
		missing = append(missing, "project_id")
	}
	if strings.TrimSpace(d.Message) == "" {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		return internal.NewValidationError("Missing required fields: "+strings.Join(missing, ", "), internal.ErrCodeValidationFailed)
	}
	return nil
}
