package dashboard

import (
	"context"

	"github.com/mohanbhogavarapu07/vsm-backend/internal/performance"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/project"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/task"
)

// AdminDashboard aggregates activity across every project.
type AdminDashboard struct {
	TotalProjects       int            `json:"total_projects"`
	TotalEmployees      int            `json:"total_employees"`
	SprintStatusSummary map[string]int `json:"sprint_status_summary"`
	TaskStatusCounts    map[string]int `json:"task_status_counts"`
	BottlenecksCount    int            `json:"bottlenecks_count"`
	BottlenecksSample   []*task.Task   `json:"bottlenecks_sample"`
	PerformanceAverages Averages       `json:"performance_averages"`
}

// Averages holds fleet-wide means; nil when no measurements exist.
type Averages struct {
	AccuracyScore   *float64 `json:"accuracy_score"`
	ProgressPercent *float64 `json:"progress_percent"`
}

// EmployeeDashboard is the caller's own slice of the system.
type EmployeeDashboard struct {
	MyProjects    []*project.Project `json:"my_projects"`
	MyTasks       []*task.Task       `json:"my_tasks"`
	MyPerformance []*performance.Log `json:"my_performance"`
	Summary       Summary            `json:"summary"`
}

type Summary struct {
	Projects        int  `json:"projects"`
	Tasks           int  `json:"tasks"`
	PerformanceLogs *int `json:"performance_logs,omitempty"`
}

// ScorePair is a performance row projected down to its two measurements.
type ScorePair struct {
	AccuracyScore   *float64 `json:"accuracy_score"`
	ProgressPercent *float64 `json:"progress_percent"`
}

type Repository interface {
	CountProjects(ctx context.Context) (int, error)
	CountEmployees(ctx context.Context) (int, error)
	SprintStatuses(ctx context.Context) ([]string, error)
	AllTasks(ctx context.Context) ([]*task.Task, error)
	PerformanceScores(ctx context.Context) ([]ScorePair, error)

	ProjectIDsForEmployee(ctx context.Context, employeeID int64) ([]int64, error)
	ProjectsByIDs(ctx context.Context, ids []int64) ([]*project.Project, error)
	TasksForEmployee(ctx context.Context, employeeID int64) ([]*task.Task, error)
	PerformanceForUser(ctx context.Context, userID int64) ([]*performance.Log, error)
}
