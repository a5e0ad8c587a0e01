package auth

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mohanbhogavarapu07/vsm-backend/internal"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/user"
)

// UserRepository is the slice of the user store the auth flow needs.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	EmailExists(ctx context.Context, email string) bool
	Create(ctx context.Context, u *user.User) (*user.User, error)
}

// Service implements registration, login, and token refresh.
type Service struct {
	users  UserRepository
	codec  *TokenCodec
	logger *slog.Logger
}

func NewService(users UserRepository, codec *TokenCodec, logger *slog.Logger) *Service {
	return &Service{users: users, codec: codec, logger: logger}
}

// Register creates a user and issues a token. Duplicate emails are a
// conflict, checked before the write.
func (s *Service) Register(ctx context.Context, dto RegisterDTO) (*AuthPayload, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if s.users.EmailExists(ctx, dto.Email) {
		return nil, internal.NewConflictError("A user with this email already exists", internal.ErrCodeEmailTaken)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	created, err := s.users.Create(ctx, &user.User{
		FullName:     dto.FullName,
		Email:        dto.Email,
		PasswordHash: string(hash),
		Role:         dto.Role,
	})
	if err != nil {
		s.logger.Error("registration failed", "error", err, "email", dto.Email)
		return nil, err
	}

	token, err := s.codec.Issue(created.ID, created.Role, created.Email)
	if err != nil {
		return nil, internal.NewInternalError("failed to issue token", err)
	}

	s.logger.Info("user registered", "user_id", created.ID, "role", created.Role)
	return &AuthPayload{User: created, Token: token}, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, dto LoginDTO) (*AuthPayload, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.users.GetByEmail(ctx, dto.Email)
	if err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	if !verifyPassword(u.PasswordHash, dto.Password) {
		return nil, internal.ErrInvalidCredentials
	}

	token, err := s.codec.Issue(u.ID, u.Role, u.Email)
	if err != nil {
		return nil, internal.NewInternalError("failed to issue token", err)
	}

	u.PasswordHash = ""
	s.logger.Info("login succeeded", "user_id", u.ID)
	return &AuthPayload{User: u, Token: token}, nil
}

// CurrentUser loads the caller's own record.
func (s *Service) CurrentUser(ctx context.Context, userID int64) (*user.User, error) {
	return s.users.GetByID(ctx, userID)
}

// Refresh reloads the user so a role changed in the datastore is reflected in
// the new token.
func (s *Service) Refresh(ctx context.Context, userID int64) (*AuthPayload, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	token, err := s.codec.Issue(u.ID, u.Role, u.Email)
	if err != nil {
		return nil, internal.NewInternalError("failed to issue token", err)
	}
	return &AuthPayload{User: u, Token: token}, nil
}

// verifyPassword compares against a bcrypt hash, falling back to a constant
// time plaintext comparison for legacy rows that predate hashing.
func verifyPassword(stored, password string) bool {
	stored = strings.TrimSpace(stored)
	if stored == "" {
		return false
	}
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}
