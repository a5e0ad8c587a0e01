package auth

import (
	"context"
	"io"
	"log/slog"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/mohanbhogavarapu07/vsm-backend/internal"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/user"
)

// Mock UserRepository for testing
type mockUserRepository struct {
	byEmail map[string]*user.User
	byID    map[int64]*user.User
	nextID  int64
}

func newMockUserRepository() *mockUserRepository {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.DefaultCost)

	repo := &mockUserRepository{
		byEmail: map[string]*user.User{},
		byID:    map[int64]*user.User{},
		nextID:  100,
	}
	repo.seed(&user.User{ID: 1, FullName: "Admin One", Email: "admin@example.com", PasswordHash: string(hash), Role: user.RoleAdmin})
	repo.seed(&user.User{ID: 2, FullName: "Emp Two", Email: "emp@example.com", PasswordHash: string(hash), Role: user.RoleEmployee})
	repo.seed(&user.User{ID: 3, FullName: "Legacy Three", Email: "legacy@example.com", PasswordHash: "plaintext-password", Role: user.RoleEmployee})
	return repo
}

func (m *mockUserRepository) seed(u *user.User) {
	m.byEmail[u.Email] = u
	m.byID[u.ID] = u
}

func (m *mockUserRepository) GetByID(_ context.Context, id int64) (*user.User, error) {
	if u, ok := m.byID[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, internal.NewNotFoundError("User not found", internal.ErrCodeUserNotFound)
}

func (m *mockUserRepository) GetByEmail(_ context.Context, email string) (*user.User, error) {
	if u, ok := m.byEmail[email]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, internal.NewNotFoundError("User not found", internal.ErrCodeUserNotFound)
}

func (m *mockUserRepository) EmailExists(_ context.Context, email string) bool {
	_, ok := m.byEmail[email]
	return ok
}

func (m *mockUserRepository) Create(_ context.Context, u *user.User) (*user.User, error) {
	m.nextID++
	created := *u
	created.ID = m.nextID
	m.seed(&created)
	out := created
	out.PasswordHash = ""
	return &out, nil
}

var _ = ginkgo.Describe("AuthService", func() {
	var (
		service  *Service
		mockRepo *mockUserRepository
	)

	quietLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ginkgo.BeforeEach(func() {
		mockRepo = newMockUserRepository()
		service = NewService(mockRepo, NewTokenCodec("service-test-secret", 24), quietLogger)
	})

	ginkgo.Describe("Register", func() {
		ginkgo.It("creates the user and issues a token", func() {
			payload, err := service.Register(context.Background(), RegisterDTO{
				FullName: "New Person",
				Email:    "new@example.com",
				Password: "secret123",
				Role:     "EMPLOYEE",
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(payload.Token).ToNot(gomega.BeEmpty())
			gomega.Expect(payload.User.Email).To(gomega.Equal("new@example.com"))
			gomega.Expect(payload.User.PasswordHash).To(gomega.BeEmpty())
		})

		ginkgo.It("rejects a duplicate email with a conflict", func() {
			_, err := service.Register(context.Background(), RegisterDTO{
				FullName: "Dup",
				Email:    "admin@example.com",
				Password: "secret123",
				Role:     "ADMIN",
			})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeConflict))
			gomega.Expect(appErr.Message).To(gomega.Equal("A user with this email already exists"))
		})

		ginkgo.It("lists every missing field in the validation message", func() {
			_, err := service.Register(context.Background(), RegisterDTO{Email: "x@example.com"})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Message).To(gomega.ContainSubstring("Missing required fields:"))
			gomega.Expect(appErr.Message).To(gomega.ContainSubstring("full_name"))
			gomega.Expect(appErr.Message).To(gomega.ContainSubstring("password"))
		})
	})

	ginkgo.Describe("Login", func() {
		ginkgo.It("returns user and token on valid credentials", func() {
			payload, err := service.Login(context.Background(), LoginDTO{
				Email:    "admin@example.com",
				Password: "correct_password",
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(payload.Token).ToNot(gomega.BeEmpty())
			gomega.Expect(payload.User.PasswordHash).To(gomega.BeEmpty())
		})

		ginkgo.It("accepts username as an alias for email", func() {
			payload, err := service.Login(context.Background(), LoginDTO{
				Username: "emp@example.com",
				Password: "correct_password",
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(payload.User.ID).To(gomega.Equal(int64(2)))
		})

		ginkgo.It("answers the same error for unknown email and wrong password", func() {
			_, unknownErr := service.Login(context.Background(), LoginDTO{
				Email:    "nobody@example.com",
				Password: "correct_password",
			})
			_, wrongErr := service.Login(context.Background(), LoginDTO{
				Email:    "admin@example.com",
				Password: "wrong_password",
			})

			gomega.Expect(unknownErr).To(gomega.Equal(internal.ErrInvalidCredentials))
			gomega.Expect(wrongErr).To(gomega.Equal(internal.ErrInvalidCredentials))
		})

		ginkgo.It("verifies legacy plaintext rows that predate hashing", func() {
			payload, err := service.Login(context.Background(), LoginDTO{
				Email:    "legacy@example.com",
				Password: "plaintext-password",
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(payload.User.ID).To(gomega.Equal(int64(3)))
		})
	})

	ginkgo.Describe("Refresh", func() {
		ginkgo.It("reissues a token carrying the role currently in the store", func() {
			mockRepo.byID[2].Role = user.RoleAdmin

			payload, err := service.Refresh(context.Background(), 2)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			claims, err := NewTokenCodec("service-test-secret", 24).Decode(payload.Token)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.Role).To(gomega.Equal(user.RoleAdmin))
		})
	})
})
