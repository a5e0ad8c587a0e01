package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mohanbhogavarapu07/vsm-backend/internal"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/transport"
)

// TokenDecoder is what the middleware needs from the codec.
type TokenDecoder interface {
	Decode(raw string) (*Claims, error)
}

// Middleware supplies the three route guards: any authenticated identity,
// admin only, and admin-or-employee.
type Middleware struct {
	*transport.BaseHandler
	codec TokenDecoder
}

func NewMiddleware(codec TokenDecoder, lg *slog.Logger) *Middleware {
	return &Middleware{
		BaseHandler: transport.NewBaseHandler(lg),
		codec:       codec,
	}
}

// ExtractToken pulls the credential from the Authorization header (Bearer,
// case-insensitive, whitespace tolerant) with X-Access-Token as fallback.
func ExtractToken(r *http.Request) string {
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if auth != "" {
		parts := strings.Fields(auth)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
	}
	return strings.TrimSpace(r.Header.Get("X-Access-Token"))
}

// RequireAuth decodes the token and attaches the identity to the request
// context. Expired tokens get their own message so clients know to log in
// again; every other decode failure maps to the same generic 401.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := ExtractToken(r)
		if token == "" {
			m.WriteError(w, internal.ErrTokenMissing.StatusCode, internal.ErrTokenMissing.Message)
			return
		}

		claims, err := m.codec.Decode(token)
		if err != nil {
			m.Logger.Warn("token validation failed", "error", err, "path", r.URL.Path)
			if errors.Is(err, ErrTokenExpired) {
				m.WriteError(w, internal.ErrTokenExpired.StatusCode, internal.ErrTokenExpired.Message)
				return
			}
			m.WriteError(w, internal.ErrInvalidToken.StatusCode, internal.ErrInvalidToken.Message)
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			m.Logger.Warn("token subject is not a user id", "subject", claims.Subject, "error", err)
			m.WriteError(w, internal.ErrInvalidToken.StatusCode, internal.ErrInvalidToken.Message)
			return
		}

		role := claims.Role
		if role == "" {
			// tokens issued here always carry a role; foreign ones may not
			role = internal.RoleEmployee
		}

		identity := &internal.Identity{UserID: userID, Role: role, Email: claims.Email}
		next.ServeHTTP(w, r.WithContext(internal.ContextWithIdentity(r.Context(), identity)))
	})
}

// RequireAdmin composes RequireAuth with an ADMIN role check.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := internal.IdentityFromContext(r.Context())
		if !ok || !id.IsAdmin() {
			m.WriteError(w, internal.ErrAdminRequired.StatusCode, internal.ErrAdminRequired.Message)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// RequireAdminOrEmployee composes RequireAuth with a known-role check.
func (m *Middleware) RequireAdminOrEmployee(next http.Handler) http.Handler {
	return m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := internal.IdentityFromContext(r.Context())
		if !ok || (id.Role != internal.RoleAdmin && id.Role != internal.RoleEmployee) {
			m.WriteError(w, internal.ErrAccessDenied.StatusCode, internal.ErrAccessDenied.Message)
			return
		}
		next.ServeHTTP(w, r)
	}))
}
