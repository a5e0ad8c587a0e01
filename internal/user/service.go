package user

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mohanbhogavarapu07/vsm-backend/internal"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/core/validation"
)

// Service handles user management. All operations here are admin-only; the
// guard sits in the routing layer.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns all users, optionally filtered by role. Unknown role values
// are ignored rather than rejected, matching the lenient query-param
// behavior of the original API.
func (s *Service) List(ctx context.Context, role string) ([]*User, error) {
	normalized := validation.NormalizeEnum(role)
	if !validation.OneOf(normalized, RoleAdmin, RoleEmployee) {
		normalized = ""
	}
	users, err := s.repo.List(ctx, normalized)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}
	return users, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) Update(ctx context.Context, id int64, dto UpdateUserDTO) (*User, error) {
	if dto.Empty() {
		return nil, internal.ErrNoValidFields
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if dto.FullName != nil {
		fields["full_name"] = strings.TrimSpace(*dto.FullName)
	}
	if dto.Email != nil {
		fields["email"] = strings.TrimSpace(*dto.Email)
	}
	if dto.Role != nil {
		fields["role"] = *dto.Role
	}
	if dto.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*dto.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, internal.NewInternalError("failed to hash password", err)
		}
		fields["password_hash"] = string(hash)
	}

	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, err
	}
	s.logger.Info("user updated", "user_id", id)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete user", "error", err, "user_id", id)
		return err
	}
	s.logger.Info("user deleted", "user_id", id)
	return nil
}
