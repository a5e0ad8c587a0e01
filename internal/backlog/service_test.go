package backlog

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/mohanbhogavarapu07/vsm-backend/internal"
)

func TestBacklog(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Backlog Module Suite")
}

type mockItemRepo struct {
	items  map[int64]*Item
	nextID int64
}

func (m *mockItemRepo) ListByProject(_ context.Context, projectID int64) ([]*Item, error) {
	out := []*Item{}
	for _, it := range m.items {
		if it.ProjectID == projectID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *mockItemRepo) GetByID(_ context.Context, id int64) (*Item, error) {
	if it, ok := m.items[id]; ok {
		copied := *it
		return &copied, nil
	}
	return nil, internal.NewNotFoundError("Backlog item not found", internal.ErrCodeBacklogNotFound)
}

func (m *mockItemRepo) Create(_ context.Context, it *Item) (*Item, error) {
	m.nextID++
	created := *it
	created.ID = m.nextID
	m.items[created.ID] = &created
	return &created, nil
}

func (m *mockItemRepo) Update(_ context.Context, id int64, fields map[string]any) (*Item, error) {
	it, ok := m.items[id]
	if !ok {
		return nil, internal.NewNotFoundError("Backlog item not found", internal.ErrCodeBacklogNotFound)
	}
	if title, ok := fields["title"].(string); ok {
		it.Title = title
	}
	if priority, ok := fields["priority"].(int); ok {
		it.Priority = priority
	}
	copied := *it
	return &copied, nil
}

func (m *mockItemRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return internal.NewNotFoundError("Backlog item not found", internal.ErrCodeBacklogNotFound)
	}
	delete(m.items, id)
	return nil
}

type mockAccess struct {
	assignments map[int64]int64 // employeeID -> projectID
}

func (m *mockAccess) AssignmentExists(_ context.Context, projectID, employeeID int64) bool {
	pid, ok := m.assignments[employeeID]
	return ok && pid == projectID
}

var _ = ginkgo.Describe("BacklogService", func() {
	var (
		service *Service
		repo    *mockItemRepo
	)

	quietLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	employee := func(id int64) *int64 { return &id }

	ginkgo.BeforeEach(func() {
		repo = &mockItemRepo{
			items: map[int64]*Item{
				1: {ID: 1, ProjectID: 10, Title: "Login page", Priority: 1},
			},
			nextID: 1,
		}
		service = NewService(repo, &mockAccess{assignments: map[int64]int64{2: 10}}, quietLogger)
	})

	ginkgo.Describe("ListByProject", func() {
		ginkgo.It("hides an unassigned project from employees", func() {
			_, err := service.ListByProject(context.Background(), 10, employee(5))

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Message).To(gomega.Equal("Project not found"))
		})

		ginkgo.It("lists for an assigned employee", func() {
			items, err := service.ListByProject(context.Background(), 10, employee(2))

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(items).To(gomega.HaveLen(1))
		})
	})

	ginkgo.Describe("Create", func() {
		ginkgo.It("requires a title", func() {
			_, err := service.Create(context.Background(), 10, CreateItemDTO{})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Message).To(gomega.Equal("Missing required fields: title"))
		})

		ginkgo.It("defaults the priority to zero", func() {
			created, err := service.Create(context.Background(), 10, CreateItemDTO{Title: "Search"})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(created.Priority).To(gomega.Equal(0))
		})
	})

	ginkgo.Describe("Update", func() {
		ginkgo.It("rejects an empty payload", func() {
			_, err := service.Update(context.Background(), 1, UpdateItemDTO{}, nil)

			gomega.Expect(err).To(gomega.Equal(internal.ErrNoValidFields))
		})

		ginkgo.It("hides an item of an unassigned project behind a 404", func() {
			title := "Hijack"
			_, err := service.Update(context.Background(), 1, UpdateItemDTO{Title: &title}, employee(5))

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeNotFound))
			gomega.Expect(appErr.Message).To(gomega.Equal("Backlog item not found"))
		})
	})
})
