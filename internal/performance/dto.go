package performance

import (
	"strings"

	"github.com/mohanbhogavarapu07/vsm-backend/internal"
)

type CreateLogDTO struct {
	UserID          *int64   `json:"user_id"`
	TaskID          *int64   `json:"task_id"`
	AccuracyScore   *float64 `json:"accuracy_score"`
	ProgressPercent *float64 `json:"progress_percent"`
	LogDate         *string  `json:"log_date"`
}

func (d *CreateLogDTO) Validate() error {
	var missing []string
	if d.UserID == nil {
		missing = append(missing, "user_id")
	}
	if d.TaskID == nil {
		missing = append(missing, "task_id")
	}
	if len(missing) > 0 {
		return internal.NewValidationError("Missing required fields: "+strings.Join(missing, ", "), internal.ErrCodeValidationFailed)
	}
	return nil
}
