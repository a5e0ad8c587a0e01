package project

import (
	"strings"

	"github.com/mohanbhogavarapu07/vsm-backend/internal"
)

type CreateProjectDTO struct {
	Name        string  `json:"project_name"`
	Description *string `json:"description"`
	CreatedBy   *int64  `json:"created_by_admin_id"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

func (d *CreateProjectDTO) Validate() error {
	var missing []string
	if strings.TrimSpace(d.Name) == "" {
		missing = append(missing, "project_name")
	}
	if d.CreatedBy == nil {
		missing = append(missing, "created_by_admin_id")
	}
	if len(missing) > 0 {
		return internal.NewValidationError("Missing required fields: "+strings.Join(missing, ", "), internal.ErrCodeValidationFailed)
	}
	d.Name = strings.TrimSpace(d.Name)
	return nil
}

type UpdateProjectDTO struct {
	Name        *string `json:"project_name"`
	Description *string `json:"description"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

func (d *UpdateProjectDTO) Empty() bool {
	return d.Name == nil && d.Description == nil && d.StartDate == nil && d.EndDate == nil
}

// AssignDTO accepts either a single employee or a batch; exactly one form
// must be present.
type AssignDTO struct {
	EmployeeID  *int64  `json:"employee_id"`
	EmployeeIDs []int64 `json:"employee_ids"`
}
