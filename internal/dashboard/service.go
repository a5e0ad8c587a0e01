package dashboard

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mohanbhogavarapu07/vsm-backend/internal/performance"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/project"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/sprint"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/task"
)

const bottleneckSampleSize = 10

// Service computes dashboard aggregates in memory from plain table reads;
// the datastore offers no aggregation push-down worth using at this scale.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Admin builds the fleet-wide dashboard.
func (s *Service) Admin(ctx context.Context) (*AdminDashboard, error) {
	totalProjects, err := s.repo.CountProjects(ctx)
	if err != nil {
		return nil, err
	}
	totalEmployees, err := s.repo.CountEmployees(ctx)
	if err != nil {
		return nil, err
	}

	sprintStatuses, err := s.repo.SprintStatuses(ctx)
	if err != nil {
		return nil, err
	}
	sprintSummary := map[string]int{
		sprint.StatusPlanned:   0,
		sprint.StatusActive:    0,
		sprint.StatusCompleted: 0,
	}
	for _, st := range sprintStatuses {
		st = strings.ToUpper(st)
		if st == "" {
			st = sprint.StatusPlanned
		}
		if _, ok := sprintSummary[st]; ok {
			sprintSummary[st]++
		}
	}

	tasks, err := s.repo.AllTasks(ctx)
	if err != nil {
		return nil, err
	}
	taskCounts := map[string]int{
		task.StatusTodo:       0,
		task.StatusInProgress: 0,
		task.StatusDone:       0,
	}
	var bottlenecks []*task.Task
	for _, t := range tasks {
		st := strings.ToUpper(t.Status)
		if st == "" {
			st = task.StatusTodo
		}
		if _, ok := taskCounts[st]; ok {
			taskCounts[st]++
		}
		if st == task.StatusInProgress {
			bottlenecks = append(bottlenecks, t)
		}
	}
	sample := bottlenecks
	if len(sample) > bottleneckSampleSize {
		sample = sample[:bottleneckSampleSize]
	}
	if sample == nil {
		sample = []*task.Task{}
	}

	scores, err := s.repo.PerformanceScores(ctx)
	if err != nil {
		return nil, err
	}

	return &AdminDashboard{
		TotalProjects:       totalProjects,
		TotalEmployees:      totalEmployees,
		SprintStatusSummary: sprintSummary,
		TaskStatusCounts:    taskCounts,
		BottlenecksCount:    len(bottlenecks),
		BottlenecksSample:   sample,
		PerformanceAverages: averageScores(scores),
	}, nil
}

// Employee builds the caller's own dashboard. An employee with no project
// assignment gets a zeroed payload rather than an error.
func (s *Service) Employee(ctx context.Context, employeeID int64) (*EmployeeDashboard, error) {
	projectIDs, err := s.repo.ProjectIDsForEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if len(projectIDs) == 0 {
		return &EmployeeDashboard{
			MyProjects:    []*project.Project{},
			MyTasks:       []*task.Task{},
			MyPerformance: []*performance.Log{},
			Summary:       Summary{},
		}, nil
	}

	myProjects, err := s.repo.ProjectsByIDs(ctx, projectIDs)
	if err != nil {
		return nil, err
	}
	myTasks, err := s.repo.TasksForEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	myPerformance, err := s.repo.PerformanceForUser(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	logCount := len(myPerformance)
	return &EmployeeDashboard{
		MyProjects:    myProjects,
		MyTasks:       myTasks,
		MyPerformance: myPerformance,
		Summary: Summary{
			Projects:        len(myProjects),
			Tasks:           len(myTasks),
			PerformanceLogs: &logCount,
		},
	}, nil
}

func averageScores(scores []ScorePair) Averages {
	var accSum, progSum float64
	var accN, progN int
	for _, p := range scores {
		if p.AccuracyScore != nil {
			accSum += *p.AccuracyScore
			accN++
		}
		if p.ProgressPercent != nil {
			progSum += *p.ProgressPercent
			progN++
		}
	}
	var avg Averages
	if accN > 0 {
		v := accSum / float64(accN)
		avg.AccuracyScore = &v
	}
	if progN > 0 {
		v := progSum / float64(progN)
		avg.ProgressPercent = &v
	}
	return avg
}
