package user

import (
	"github.com/mohanbhogavarapu07/vsm-backend/internal"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/core/validation"
)

// UpdateUserDTO carries a partial update; nil fields are left untouched.
type UpdateUserDTO struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

// Validate normalizes the role and rejects values outside the closed set
// before anything is written.
func (d *UpdateUserDTO) Validate() error {
	if d.Role != nil {
		normalized := validation.NormalizeEnum(*d.Role)
		if !validation.OneOf(normalized, RoleAdmin, RoleEmployee) {
			return internal.NewValidationError("role must be ADMIN or EMPLOYEE", internal.ErrCodeInvalidRole)
		}
		d.Role = &normalized
	}
	if d.Password != nil && len(*d.Password) < 6 {
		return internal.NewValidationError("password must be at least 6 characters", internal.ErrCodeWeakPassword)
	}
	return nil
}

// Empty reports whether the payload carries no updatable fields.
func (d *UpdateUserDTO) Empty() bool {
	return d.FullName == nil && d.Email == nil && d.Password == nil && d.Role == nil
}
