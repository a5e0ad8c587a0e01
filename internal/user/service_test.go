package user

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/mohanbhogavarapu07/vsm-backend/internal"
)

func TestUser(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "User Module Suite")
}

type mockUserRepo struct {
	users    map[int64]*User
	lastRole string // role filter passed to the last List call
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users: map[int64]*User{
			1: {ID: 1, FullName: "Admin One", Email: "admin@example.com", Role: RoleAdmin},
			2: {ID: 2, FullName: "Emp Two", Email: "emp@example.com", Role: RoleEmployee},
		},
	}
}

func (m *mockUserRepo) List(_ context.Context, role string) ([]*User, error) {
	m.lastRole = role
	out := []*User{}
	for _, u := range m.users {
		if role != "" && u.Role != role {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (*User, error) {
	if u, ok := m.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, internal.NewNotFoundError("User not found", internal.ErrCodeUserNotFound)
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, internal.NewNotFoundError("User not found", internal.ErrCodeUserNotFound)
}

func (m *mockUserRepo) EmailExists(_ context.Context, email string) bool {
	for _, u := range m.users {
		if u.Email == email {
			return true
		}
	}
	return false
}

func (m *mockUserRepo) Exists(_ context.Context, id int64) bool {
	_, ok := m.users[id]
	return ok
}

func (m *mockUserRepo) Create(_ context.Context, u *User) (*User, error) {
	created := *u
	created.ID = int64(len(m.users) + 1)
	m.users[created.ID] = &created
	return &created, nil
}

func (m *mockUserRepo) Update(_ context.Context, id int64, fields map[string]any) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, internal.NewNotFoundError("User not found", internal.ErrCodeUserNotFound)
	}
	if name, ok := fields["full_name"].(string); ok {
		u.FullName = name
	}
	if role, ok := fields["role"].(string); ok {
		u.Role = role
	}
	if hash, ok := fields["password_hash"].(string); ok {
		u.PasswordHash = hash
	}
	copied := *u
	return &copied, nil
}

func (m *mockUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.users[id]; !ok {
		return internal.NewNotFoundError("User not found", internal.ErrCodeUserNotFound)
	}
	delete(m.users, id)
	return nil
}

var _ = ginkgo.Describe("UserService", func() {
	var (
		service *Service
		repo    *mockUserRepo
	)

	quietLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ginkgo.BeforeEach(func() {
		repo = newMockUserRepo()
		service = NewService(repo, quietLogger)
	})

	ginkgo.Describe("List", func() {
		ginkgo.It("normalizes a lowercase role filter", func() {
			users, err := service.List(context.Background(), "employee")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(repo.lastRole).To(gomega.Equal(RoleEmployee))
			gomega.Expect(users).To(gomega.HaveLen(1))
		})

		ginkgo.It("ignores an unknown role filter instead of rejecting it", func() {
			users, err := service.List(context.Background(), "WIZARD")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(repo.lastRole).To(gomega.Equal(""))
			gomega.Expect(users).To(gomega.HaveLen(2))
		})
	})

	ginkgo.Describe("Update", func() {
		str := func(s string) *string { return &s }

		ginkgo.It("rejects an empty payload", func() {
			_, err := service.Update(context.Background(), 2, UpdateUserDTO{})

			gomega.Expect(err).To(gomega.Equal(internal.ErrNoValidFields))
		})

		ginkgo.It("hashes a new password before storing it", func() {
			_, err := service.Update(context.Background(), 2, UpdateUserDTO{Password: str("hunter22")})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			stored := repo.users[2].PasswordHash
			gomega.Expect(stored).ToNot(gomega.Equal("hunter22"))
			gomega.Expect(bcrypt.CompareHashAndPassword([]byte(stored), []byte("hunter22"))).To(gomega.Succeed())
		})

		ginkgo.It("rejects a short password", func() {
			_, err := service.Update(context.Background(), 2, UpdateUserDTO{Password: str("abc")})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Message).To(gomega.Equal("password must be at least 6 characters"))
		})

		ginkgo.It("normalizes the role before writing", func() {
			updated, err := service.Update(context.Background(), 2, UpdateUserDTO{Role: str("admin")})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(updated.Role).To(gomega.Equal(RoleAdmin))
		})

		ginkgo.It("rejects a role outside the closed set", func() {
			_, err := service.Update(context.Background(), 2, UpdateUserDTO{Role: str("SUPERUSER")})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Message).To(gomega.Equal("role must be ADMIN or EMPLOYEE"))
		})
	})

	ginkgo.Describe("Delete", func() {
		ginkgo.It("404s on a missing user", func() {
			err := service.Delete(context.Background(), 999)

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeNotFound))
		})
	})
})
