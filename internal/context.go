package internal

import (
	"context"
)

const (
	RoleAdmin    = "ADMIN"
	RoleEmployee = "EMPLOYEE"
)

// Identity is the decoded token payload attached to an authenticated request.
type Identity struct {
	UserID int64
	Role   string
	Email  string
}

func (id *Identity) IsAdmin() bool {
	return id.Role == RoleAdmin
}

// ActingEmployeeID returns nil for admins (unrestricted) and the caller's id
// for employees. Services apply it as the ownership filter.
func (id *Identity) ActingEmployeeID() *int64 {
	if id.IsAdmin() {
		return nil
	}
	uid := id.UserID
	return &uid
}

type ctxKey string

const identityKey ctxKey = "identity"

func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	if ctx == nil {
		return nil, false
	}
	id, ok := ctx.Value(identityKey).(*Identity)
	return id, ok && id != nil
}
