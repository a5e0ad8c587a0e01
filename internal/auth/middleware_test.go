package auth

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/mohanbhogavarapu07/vsm-backend/internal"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/transport"
)

var _ = ginkgo.Describe("Middleware", func() {
	const secret = "middleware-secret"

	var (
		codec *TokenCodec
		mw    *Middleware
		next  http.Handler
	)

	quietLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	issue := func(userID int64, role string) string {
		token, err := codec.Issue(userID, role, "someone@example.com")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		return token
	}

	decodeBody := func(rec *httptest.ResponseRecorder) transport.APIResponse {
		var resp transport.APIResponse
		gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(gomega.Succeed())
		return resp
	}

	ginkgo.BeforeEach(func() {
		codec = NewTokenCodec(secret, 24)
		mw = NewMiddleware(codec, quietLogger)
		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := internal.IdentityFromContext(r.Context())
			gomega.Expect(ok).To(gomega.BeTrue())
			w.Header().Set("X-User-ID", id.Role)
			w.WriteHeader(http.StatusOK)
		})
	})

	ginkgo.Describe("RequireAuth", func() {
		ginkgo.It("rejects requests without a token and says how to send one", func() {
			req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			rec := httptest.NewRecorder()

			mw.RequireAuth(next).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			resp := decodeBody(rec)
			gomega.Expect(resp.Success).To(gomega.BeFalse())
			gomega.Expect(resp.Message).To(gomega.ContainSubstring("Authorization: Bearer"))
		})

		ginkgo.It("accepts a bearer token regardless of scheme casing", func() {
			req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			req.Header.Set("Authorization", "BEARER "+issue(1, internal.RoleAdmin))
			rec := httptest.NewRecorder()

			mw.RequireAuth(next).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("accepts the token via X-Access-Token", func() {
			req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			req.Header.Set("X-Access-Token", issue(2, internal.RoleEmployee))
			rec := httptest.NewRecorder()

			mw.RequireAuth(next).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("tells expired-token callers to log in again", func() {
			expiredCodec := NewTokenCodec(secret, 24)
			expiredCodec.lifetime = -1
			req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			token, err := expiredCodec.Issue(1, internal.RoleAdmin, "a@example.com")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()

			mw.RequireAuth(next).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(decodeBody(rec).Message).To(gomega.ContainSubstring("expired"))
		})

		ginkgo.It("answers a generic 401 for a tampered token", func() {
			other := NewTokenCodec("not-the-secret", 24)
			token, err := other.Issue(1, internal.RoleAdmin, "a@example.com")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()

			mw.RequireAuth(next).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(decodeBody(rec).Message).To(gomega.Equal("Invalid or expired token"))
		})
	})

	ginkgo.Describe("RequireAdmin", func() {
		ginkgo.It("lets admins through", func() {
			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			req.Header.Set("Authorization", "Bearer "+issue(1, internal.RoleAdmin))
			rec := httptest.NewRecorder()

			mw.RequireAdmin(next).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("forbids employees", func() {
			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			req.Header.Set("Authorization", "Bearer "+issue(2, internal.RoleEmployee))
			rec := httptest.NewRecorder()

			mw.RequireAdmin(next).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
			gomega.Expect(decodeBody(rec).Message).To(gomega.Equal("Admin access required"))
		})
	})

	ginkgo.Describe("RequireAdminOrEmployee", func() {
		ginkgo.It("forbids unknown roles", func() {
			req := httptest.NewRequest(http.MethodGet, "/projects", nil)
			req.Header.Set("Authorization", "Bearer "+issue(3, "CONTRACTOR"))
			rec := httptest.NewRecorder()

			mw.RequireAdminOrEmployee(next).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
			gomega.Expect(decodeBody(rec).Message).To(gomega.Equal("Access denied"))
		})

		ginkgo.It("lets both known roles through", func() {
			for _, role := range []string{internal.RoleAdmin, internal.RoleEmployee} {
				req := httptest.NewRequest(http.MethodGet, "/projects", nil)
				req.Header.Set("Authorization", "Bearer "+issue(4, role))
				rec := httptest.NewRecorder()

				mw.RequireAdminOrEmployee(next).ServeHTTP(rec, req)

				gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			}
		})
	})
})
