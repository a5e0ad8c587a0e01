package auth

import (
	"strings"

	"github.com/mohanbhogavarapu07/vsm-backend/internal"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/core/validation"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/user"
)

// RegisterDTO is the transport shape for POST /auth/register.
type RegisterDTO struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (d *RegisterDTO) Validate() error {
	var missing []string
	if strings.TrimSpace(d.FullName) == "" {
		missing = append(missing, "full_name")
	}
	if strings.TrimSpace(d.Email) == "" {
		missing = append(missing, "email")
	}
	if d.Password == "" {
		missing = append(missing, "password")
	}
	if strings.TrimSpace(d.Role) == "" {
		missing = append(missing, "role")
	}
	if len(missing) > 0 {
		return internal.NewValidationError("Missing required fields: "+strings.Join(missing, ", "), internal.ErrCodeValidationFailed)
	}

	d.Role = validation.NormalizeEnum(d.Role)
	if !validation.OneOf(d.Role, user.RoleAdmin, user.RoleEmployee) {
		return internal.NewValidationError("role must be ADMIN or EMPLOYEE", internal.ErrCodeInvalidRole)
	}
	if len(d.Password) < 6 {
		return internal.NewValidationError("password must be at least 6 characters", internal.ErrCodeWeakPassword)
	}
	d.Email = strings.TrimSpace(d.Email)
	d.FullName = strings.TrimSpace(d.FullName)
	return nil
}

// LoginDTO accepts "username" as an alias for "email"; some clients send
// form-style credentials.
type LoginDTO struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (d *LoginDTO) Validate() error {
	if strings.TrimSpace(d.Email) == "" {
		d.Email = strings.TrimSpace(d.Username)
	} else {
		d.Email = strings.TrimSpace(d.Email)
	}
	if d.Email == "" {
		return internal.NewValidationError("Missing or empty 'email' (or 'username').", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(d.Password) == "" {
		return internal.NewValidationError("Missing or empty 'password'.", internal.ErrCodeValidationFailed)
	}
	return nil
}

// AuthPayload is the register/login/refresh response body.
type AuthPayload struct {
	User  *user.User `json:"user"`
	Token string     `json:"token"`
}
