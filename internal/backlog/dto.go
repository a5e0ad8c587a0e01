package backlog

import (
	"strings"

	"github.com/mohanbhogavarapu07/vsm-backend/internal"
)

type CreateItemDTO struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Priority    *int    `json:"priority"`
}

func (d *CreateItemDTO) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return internal.NewValidationError("Missing required fields: title", internal.ErrCodeValidationFailed)
	}
	d.Title = strings.TrimSpace(d.Title)
	return nil
}

type UpdateItemDTO struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *int    `json:"priority"`
}

func (d *UpdateItemDTO) Empty() bool {
	return d.Title == nil && d.Description == nil && d.Priority == nil
}
