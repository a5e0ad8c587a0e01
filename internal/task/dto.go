package task

import (
	"strings"

	"github.com/mohanbhogavarapu07/vsm-backend/internal"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/core/validation"
)

type CreateTaskDTO struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	Assignee    *int64  `json:"assigned_to_user_id"`
}

func (d *CreateTaskDTO) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return internal.NewValidationError("Missing required fields: title", internal.ErrCodeValidationFailed)
	}
	d.Title = strings.TrimSpace(d.Title)

	if d.Status == "" {
		d.Status = StatusTodo
	}
	d.Status = validation.NormalizeEnum(d.Status)
	if !validation.OneOf(d.Status, Statuses...) {
		return internal.NewValidationError("status must be TODO, IN_PROGRESS, or DONE", internal.ErrCodeInvalidStatus)
	}
	return nil
}

type UpdateTaskDTO struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Assignee    *int64  `json:"assigned_to_user_id"`
}

func (d *UpdateTaskDTO) Empty() bool {
	return d.Title == nil && d.Description == nil && d.Status == nil && d.Assignee == nil
}

func (d *UpdateTaskDTO) Validate() error {
	if d.Empty() {
		return internal.ErrNoValidFields
	}
	if d.Status != nil {
		normalized := validation.NormalizeEnum(*d.Status)
		if !validation.OneOf(normalized, Statuses...) {
			return internal.NewValidationError("status must be TODO, IN_PROGRESS, or DONE", internal.ErrCodeInvalidStatus)
		}
		d.Status = &normalized
	}
	return nil
}

type UpdateStatusDTO struct {
	Status string `json:"status"`
}

func (d *UpdateStatusDTO) Validate() error {
	d.Status = validation.NormalizeEnum(d.Status)
	if !validation.OneOf(d.Status, Statuses...) {
		return internal.NewValidationError("status must be TODO, IN_PROGRESS, or DONE", internal.ErrCodeInvalidStatus)
	}
	return nil
}
