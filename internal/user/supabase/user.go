package supabase

import (
	"context"

	"github.com/mohanbhogavarapu07/vsm-backend/internal"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/postgrest"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/user"
)

const table = "users"

// sanitizedColumns excludes password_hash so reads can never leak it.
const sanitizedColumns = "user_id, full_name, email, role, created_at, updated_at"

type userRow struct {
	UserID       int64  `json:"user_id"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	Role         string `json:"role"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func (r userRow) toUser() *user.User {
	return &user.User{
		ID:           r.UserID,
		FullName:     r.FullName,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Role:         r.Role,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

type Repo struct {
	db *postgrest.Client
}

func NewRepo(db *postgrest.Client) *Repo {
	return &Repo{db: db}
}

func (r *Repo) List(ctx context.Context, role string) ([]*user.User, error) {
	q := postgrest.Query{Columns: sanitizedColumns, Order: []string{"user_id"}}
	if role != "" {
		q.Filters = append(q.Filters, postgrest.Eq("role", role))
	}
	raw, err := r.db.Select(ctx, table, q)
	if err != nil {
		return nil, err
	}
	rows, err := postgrest.DecodeRows[userRow](raw)
	if err != nil {
		return nil, err
	}
	users := make([]*user.User, len(rows))
	for i, row := range rows {
		users[i] = row.toUser()
	}
	return users, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	raw, err := r.db.Select(ctx, table, postgrest.Query{
		Columns: sanitizedColumns,
		Filters: []postgrest.Filter{postgrest.Eq("user_id", id)},
		Limit:   1,
	})
	if err != nil {
		return nil, err
	}
	row, err := postgrest.DecodeOne[userRow](raw, "User", internal.ErrCodeUserNotFound)
	if err != nil {
		return nil, err
	}
	return row.toUser(), nil
}

// GetByEmail is the credential lookup: the only read that includes the hash.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	raw, err := r.db.Select(ctx, table, postgrest.Query{
		Filters: []postgrest.Filter{postgrest.Eq("email", email)},
		Limit:   1,
	})
	if err != nil {
		return nil, err
	}
	row, err := postgrest.DecodeOne[userRow](raw, "User", internal.ErrCodeUserNotFound)
	if err != nil {
		return nil, err
	}
	return row.toUser(), nil
}

func (r *Repo) EmailExists(ctx context.Context, email string) bool {
	return r.db.Exists(ctx, table, "email", email)
}

func (r *Repo) Exists(ctx context.Context, id int64) bool {
	return r.db.Exists(ctx, table, "user_id", id)
}

func (r *Repo) Create(ctx context.Context, u *user.User) (*user.User, error) {
	raw, err := r.db.Insert(ctx, table, map[string]any{
		"full_name":     u.FullName,
		"email":         u.Email,
		"password_hash": u.PasswordHash,
		"role":          u.Role,
	})
	if err != nil {
		return nil, err
	}
	row, err := postgrest.DecodeOne[userRow](raw, "User", internal.ErrCodeUserNotFound)
	if err != nil {
		return nil, err
	}
	created := row.toUser()
	created.PasswordHash = ""
	return created, nil
}

func (r *Repo) Update(ctx context.Context, id int64, fields map[string]any) (*user.User, error) {
	raw, err := r.db.Update(ctx, table, fields, postgrest.Eq("user_id", id))
	if err != nil {
		return nil, err
	}
	row, err := postgrest.DecodeOne[userRow](raw, "User", internal.ErrCodeUserNotFound)
	if err != nil {
		return nil, err
	}
	updated := row.toUser()
	updated.PasswordHash = ""
	return updated, nil
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	raw, err := r.db.Delete(ctx, table, postgrest.Eq("user_id", id))
	if err != nil {
		return err
	}
	rows, err := postgrest.DecodeRows[userRow](raw)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return internal.NewNotFoundError("User not found", internal.ErrCodeUserNotFound)
	}
	return nil
}
