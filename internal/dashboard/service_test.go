package dashboard

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/mohanbhogavarapu07/vsm-backend/internal/performance"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/project"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/sprint"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/task"
)

func TestDashboard(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Dashboard Module Suite")
}

type mockDashboardRepo struct {
	projects       []*project.Project
	employees      int
	sprintStatuses []string
	tasks          []*task.Task
	scores         []ScorePair
	assignments    map[int64][]int64 // employeeID -> projectIDs
	performance    map[int64][]*performance.Log
}

func (m *mockDashboardRepo) CountProjects(_ context.Context) (int, error) {
	return len(m.projects), nil
}

func (m *mockDashboardRepo) CountEmployees(_ context.Context) (int, error) {
	return m.employees, nil
}

func (m *mockDashboardRepo) SprintStatuses(_ context.Context) ([]string, error) {
	return m.sprintStatuses, nil
}

func (m *mockDashboardRepo) AllTasks(_ context.Context) ([]*task.Task, error) {
	return m.tasks, nil
}

func (m *mockDashboardRepo) PerformanceScores(_ context.Context) ([]ScorePair, error) {
	return m.scores, nil
}

func (m *mockDashboardRepo) ProjectIDsForEmployee(_ context.Context, employeeID int64) ([]int64, error) {
	return m.assignments[employeeID], nil
}

func (m *mockDashboardRepo) ProjectsByIDs(_ context.Context, ids []int64) ([]*project.Project, error) {
	var out []*project.Project
	for _, p := range m.projects {
		for _, id := range ids {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (m *mockDashboardRepo) TasksForEmployee(_ context.Context, employeeID int64) ([]*task.Task, error) {
	out := []*task.Task{}
	for _, t := range m.tasks {
		if t.Assignee != nil && *t.Assignee == employeeID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockDashboardRepo) PerformanceForUser(_ context.Context, userID int64) ([]*performance.Log, error) {
	logs := m.performance[userID]
	if logs == nil {
		logs = []*performance.Log{}
	}
	return logs, nil
}

var _ = ginkgo.Describe("DashboardService", func() {
	var (
		service *Service
		repo    *mockDashboardRepo
	)

	quietLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	score := func(v float64) *float64 { return &v }
	assignee := func(id int64) *int64 { return &id }

	inProgressTasks := func(n int) []*task.Task {
		out := make([]*task.Task, 0, n)
		for i := 0; i < n; i++ {
			out = append(out, &task.Task{ID: int64(i + 1), Status: task.StatusInProgress})
		}
		return out
	}

	ginkgo.BeforeEach(func() {
		repo = &mockDashboardRepo{
			projects:       []*project.Project{{ID: 10, Name: "Apollo"}},
			employees:      3,
			sprintStatuses: []string{"ACTIVE", "active", "", "COMPLETED", "ON_HOLD"},
			tasks: []*task.Task{
				{ID: 1, Status: task.StatusTodo, Assignee: assignee(2)},
				{ID: 2, Status: task.StatusInProgress, Assignee: assignee(2)},
				{ID: 3, Status: ""},
				{ID: 4, Status: "ARCHIVED"},
			},
			scores:      []ScorePair{},
			assignments: map[int64][]int64{2: {10}},
			performance: map[int64][]*performance.Log{},
		}
		service = NewService(repo, quietLogger)
	})

	ginkgo.Describe("Admin", func() {
		ginkgo.It("counts sprint statuses case-insensitively and defaults blanks to PLANNED", func() {
			dash, err := service.Admin(context.Background())

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(dash.SprintStatusSummary).To(gomega.Equal(map[string]int{
				sprint.StatusPlanned:   1,
				sprint.StatusActive:    2,
				sprint.StatusCompleted: 1,
			}))
		})

		ginkgo.It("defaults blank task statuses to TODO and ignores unknown ones", func() {
			dash, err := service.Admin(context.Background())

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(dash.TaskStatusCounts[task.StatusTodo]).To(gomega.Equal(2))
			gomega.Expect(dash.TaskStatusCounts[task.StatusInProgress]).To(gomega.Equal(1))
			gomega.Expect(dash.TaskStatusCounts).ToNot(gomega.HaveKey("ARCHIVED"))
		})

		ginkgo.It("reports the full bottleneck count but caps the sample", func() {
			repo.tasks = inProgressTasks(15)

			dash, err := service.Admin(context.Background())

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(dash.BottlenecksCount).To(gomega.Equal(15))
			gomega.Expect(dash.BottlenecksSample).To(gomega.HaveLen(10))
		})

		ginkgo.It("answers an empty sample slice, not nil, when nothing is stuck", func() {
			repo.tasks = nil

			dash, err := service.Admin(context.Background())

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(dash.BottlenecksSample).ToNot(gomega.BeNil())
			gomega.Expect(dash.BottlenecksSample).To(gomega.BeEmpty())
		})

		ginkgo.It("leaves averages nil when no measurements exist", func() {
			dash, err := service.Admin(context.Background())

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(dash.PerformanceAverages.AccuracyScore).To(gomega.BeNil())
			gomega.Expect(dash.PerformanceAverages.ProgressPercent).To(gomega.BeNil())
		})

		ginkgo.It("averages only the rows that carry a measurement", func() {
			repo.scores = []ScorePair{
				{AccuracyScore: score(80), ProgressPercent: score(50)},
				{AccuracyScore: score(90)},
				{ProgressPercent: score(100)},
			}

			dash, err := service.Admin(context.Background())

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(*dash.PerformanceAverages.AccuracyScore).To(gomega.Equal(85.0))
			gomega.Expect(*dash.PerformanceAverages.ProgressPercent).To(gomega.Equal(75.0))
		})
	})

	ginkgo.Describe("Employee", func() {
		ginkgo.It("zeroes the payload for an unassigned employee", func() {
			dash, err := service.Employee(context.Background(), 99)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(dash.MyProjects).To(gomega.BeEmpty())
			gomega.Expect(dash.MyTasks).To(gomega.BeEmpty())
			gomega.Expect(dash.MyPerformance).To(gomega.BeEmpty())
			gomega.Expect(dash.Summary.PerformanceLogs).To(gomega.BeNil())
		})

		ginkgo.It("fills the payload for an assigned employee", func() {
			repo.performance[2] = []*performance.Log{{ID: 1, UserID: 2, TaskID: 2}}

			dash, err := service.Employee(context.Background(), 2)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(dash.MyProjects).To(gomega.HaveLen(1))
			gomega.Expect(dash.MyTasks).To(gomega.HaveLen(2))
			gomega.Expect(dash.Summary.Projects).To(gomega.Equal(1))
			gomega.Expect(dash.Summary.Tasks).To(gomega.Equal(2))
			gomega.Expect(*dash.Summary.PerformanceLogs).To(gomega.Equal(1))
		})
	})
})
