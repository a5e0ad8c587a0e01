package sprint

import (
	"strings"

	"github.com/mohanbhogavarapu07/vsm-backend/internal"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/core/validation"
)

type CreateSprintDTO struct {
	Name      string  `json:"sprint_name"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Status    string  `json:"status"`
}

func (d *CreateSprintDTO) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return internal.NewValidationError("Missing required fields: sprint_name", internal.ErrCodeValidationFailed)
	}
	d.Name = strings.TrimSpace(d.Name)

	if d.Status == "" {
		d.Status = StatusPlanned
	}
	d.Status = validation.NormalizeEnum(d.Status)
	if !validation.OneOf(d.Status, Statuses...) {
		return internal.NewValidationError("status must be PLANNED, ACTIVE, or COMPLETED", internal.ErrCodeInvalidStatus)
	}
	return nil
}

type UpdateSprintDTO struct {
	Name      *string `json:"sprint_name"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Status    *string `json:"status"`
}

func (d *UpdateSprintDTO) Empty() bool {
	return d.Name == nil && d.StartDate == nil && d.EndDate == nil && d.Status == nil
}

func (d *UpdateSprintDTO) Validate() error {
	if d.Empty() {
		return internal.ErrNoValidFields
	}
	if d.Status != nil {
		normalized := validation.NormalizeEnum(*d.Status)
		if !validation.OneOf(normalized, Statuses...) {
			return internal.NewValidationError("status must be PLANNED, ACTIVE, or COMPLETED", internal.ErrCodeInvalidStatus)
		}
		d.Status = &normalized
	}
	return nil
}
