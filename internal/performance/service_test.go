package performance

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/mohanbhogavarapu07/vsm-backend/internal"
)

func TestPerformance(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Performance Module Suite")
}

type mockLogRepo struct {
	logs   []*Log
	nextID int64
}

func (m *mockLogRepo) Create(_ context.Context, l *Log) (*Log, error) {
	m.nextID++
	created := *l
	created.ID = m.nextID
	m.logs = append(m.logs, &created)
	return &created, nil
}

func (m *mockLogRepo) ListByUser(_ context.Context, userID int64) ([]*Log, error) {
	out := []*Log{}
	for _, l := range m.logs {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *mockLogRepo) ListByProject(_ context.Context, _ int64) ([]*Log, error) {
	return m.logs, nil
}

type mockDirectory struct {
	ids map[int64]bool
}

func (m *mockDirectory) Exists(_ context.Context, id int64) bool {
	return m.ids[id]
}

var _ = ginkgo.Describe("PerformanceService", func() {
	var (
		service *Service
		repo    *mockLogRepo
	)

	quietLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	id := func(v int64) *int64 { return &v }

	ginkgo.BeforeEach(func() {
		repo = &mockLogRepo{}
		users := &mockDirectory{ids: map[int64]bool{2: true}}
		tasks := &mockDirectory{ids: map[int64]bool{5: true}}
		service = NewService(repo, users, tasks, quietLogger)
	})

	ginkgo.Describe("Create", func() {
		ginkgo.It("stores a log for a known user and task", func() {
			created, err := service.Create(context.Background(), CreateLogDTO{UserID: id(2), TaskID: id(5)})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(created.ID).ToNot(gomega.BeZero())
		})

		ginkgo.It("lists both missing ids in the validation message", func() {
			_, err := service.Create(context.Background(), CreateLogDTO{})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Message).To(gomega.Equal("Missing required fields: user_id, task_id"))
		})

		ginkgo.It("404s on an unknown user", func() {
			_, err := service.Create(context.Background(), CreateLogDTO{UserID: id(999), TaskID: id(5)})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Message).To(gomega.Equal("User not found"))
		})

		ginkgo.It("404s on an unknown task", func() {
			_, err := service.Create(context.Background(), CreateLogDTO{UserID: id(2), TaskID: id(999)})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Message).To(gomega.Equal("Task not found"))
		})
	})

	ginkgo.Describe("ListByUser", func() {
		ginkgo.It("forbids an employee reading someone else's history", func() {
			_, err := service.ListByUser(context.Background(), 2, id(3))

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeForbidden))
			gomega.Expect(appErr.Message).To(gomega.Equal("Access denied"))
		})

		ginkgo.It("lets an employee read their own history", func() {
			_, err := service.Create(context.Background(), CreateLogDTO{UserID: id(2), TaskID: id(5)})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			logs, err := service.ListByUser(context.Background(), 2, id(2))

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(logs).To(gomega.HaveLen(1))
		})

		ginkgo.It("lets an admin read anyone's history", func() {
			logs, err := service.ListByUser(context.Background(), 2, nil)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(logs).To(gomega.BeEmpty())
		})
	})
})
