package user

import "context"

const (
	RoleAdmin    = "ADMIN"
	RoleEmployee = "EMPLOYEE"
)

// User mirrors the users table. PasswordHash is only populated on the
// credential lookup path and is never serialized.
type User struct {
	ID           int64  `json:"user_id"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	CreatedAt    string `json:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}

// Repository is the data access surface for users.
type Repository interface {
	List(ctx context.Context, role string) ([]*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	EmailExists(ctx context.Context, email string) bool
	Exists(ctx context.Context, id int64) bool
	Create(ctx context.Context, u *User) (*User, error)
	Update(ctx context.Context, id int64, fields map[string]any) (*User, error)
	Delete(ctx context.Context, id int64) error
}
