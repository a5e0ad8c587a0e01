package rest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi"

	"github.com/mohanbhogavarapu07/vsm-backend/internal/auth"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/backlog"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/chat"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/dashboard"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/performance"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/postgrest"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/project"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/sprint"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/task"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/transport"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/transport/middleware"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/user"
)

// Handlers bundles every endpoint group the router mounts.
type Handlers struct {
	Auth        *auth.Handler
	AuthMW      *auth.Middleware
	User        *user.Handler
	Project     *project.Handler
	Backlog     *backlog.Handler
	Sprint      *sprint.Handler
	Task        *task.Handler
	Performance *performance.Handler
	Chat        *chat.Handler
	Dashboard   *dashboard.Handler
}

func RegisterAllRoutes(router *chi.Mux, store *postgrest.Client, h Handlers, allowedOrigins []string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(store)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	router.NotFound(notFoundHandler)
	router.MethodNotAllowed(methodNotAllowedHandler)

	router.Get("/", indexHandler)
	router.Get("/health", healthHandler.pingHandler)
	router.Get("/health/ready", healthHandler.healthCheckHandler)

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)

		r.Group(func(pr chi.Router) {
			pr.Use(h.AuthMW.RequireAuth)
			pr.Get("/me", h.Auth.Me)
			pr.Post("/refresh", h.Auth.Refresh)
		})
	})

	router.Route("/users", func(r chi.Router) {
		r.Use(h.AuthMW.RequireAdmin)
		r.Get("/", h.User.ListUsers)
		r.Get("/{userID}", h.User.GetUser)
		r.Put("/{userID}", h.User.UpdateUser)
		r.Delete("/{userID}", h.User.DeleteUser)
	})

	router.Route("/projects", func(r chi.Router) {
		r.Group(func(ar chi.Router) {
			ar.Use(h.AuthMW.RequireAdminOrEmployee)
			ar.Get("/", h.Project.ListProjects)
			ar.Get("/{projectID}", h.Project.GetProject)
			ar.Get("/{projectID}/backlog", h.Backlog.ListItems)
			ar.Get("/{projectID}/sprints", h.Sprint.ListSprints)
		})

		r.Group(func(mr chi.Router) {
			mr.Use(h.AuthMW.RequireAdmin)
			mr.Post("/", h.Project.CreateProject)
			mr.Put("/{projectID}", h.Project.UpdateProject)
			mr.Delete("/{projectID}", h.Project.DeleteProject)
			mr.Post("/{projectID}/assign", h.Project.Assign)
			mr.Get("/{projectID}/members", h.Project.ListMembers)
			mr.Delete("/{projectID}/members/{userID}", h.Project.RemoveMember)
			mr.Post("/{projectID}/backlog", h.Backlog.CreateItem)
			mr.Post("/{projectID}/sprints", h.Sprint.CreateSprint)
		})
	})

	router.Route("/backlog", func(r chi.Router) {
		r.With(h.AuthMW.RequireAdminOrEmployee).Put("/{backlogID}", h.Backlog.UpdateItem)
		r.With(h.AuthMW.RequireAdmin).Delete("/{backlogID}", h.Backlog.DeleteItem)
	})

	router.Route("/sprints", func(r chi.Router) {
		r.Group(func(ar chi.Router) {
			ar.Use(h.AuthMW.RequireAdminOrEmployee)
			ar.Get("/{sprintID}", h.Sprint.GetSprint)
			ar.Get("/{sprintID}/tasks", h.Task.ListSprintTasks)
		})

		r.Group(func(mr chi.Router) {
			mr.Use(h.AuthMW.RequireAdmin)
			mr.Put("/{sprintID}", h.Sprint.UpdateSprint)
			mr.Delete("/{sprintID}", h.Sprint.DeleteSprint)
			mr.Post("/{sprintID}/tasks", h.Task.CreateTask)
		})
	})

	router.Route("/tasks", func(r chi.Router) {
		r.Group(func(ar chi.Router) {
			ar.Use(h.AuthMW.RequireAdminOrEmployee)
			ar.Get("/", h.Task.ListTasks)
			ar.Get("/{taskID}", h.Task.GetTask)
			ar.Put("/{taskID}", h.Task.UpdateTask)
			ar.Put("/{taskID}/status", h.Task.UpdateTaskStatus)
		})

		r.With(h.AuthMW.RequireAdmin).Delete("/{taskID}", h.Task.DeleteTask)
	})

	router.Route("/performance", func(r chi.Router) {
		r.Group(func(mr chi.Router) {
			mr.Use(h.AuthMW.RequireAdmin)
			mr.Post("/log", h.Performance.CreateLog)
			mr.Post("/logs", h.Performance.CreateLog)
			mr.Get("/user/{userID}", h.Performance.UserPerformance)
			mr.Get("/project/{projectID}", h.Performance.ProjectPerformance)
		})

		r.With(h.AuthMW.RequireAdminOrEmployee).Get("/me", h.Performance.MyPerformance)
	})

	router.Route("/chat", func(r chi.Router) {
		r.Use(h.AuthMW.RequireAdminOrEmployee)
		r.Post("/send", h.Chat.SendMessage)
		r.Get("/project/{projectID}", h.Chat.ListProjectChat)
	})

	router.Route("/dashboard", func(r chi.Router) {
		r.With(h.AuthMW.RequireAdminOrEmployee).Get("/", h.Dashboard.Dashboard)
		r.With(h.AuthMW.RequireAdmin).Get("/admin", h.Dashboard.AdminDashboard)
		r.With(h.AuthMW.RequireAdminOrEmployee).Get("/employee", h.Dashboard.EmployeeDashboard)
	})
}

func indexHandler(w http.ResponseWriter, r *http.Request) {
	payload := map[string]any{
		"message": "AI-Powered Virtual Scrum Master API",
		"version": "1.0.0",
		"docs": map[string]string{
			"auth":        "POST /auth/register, POST /auth/login, GET /auth/me",
			"users":       "GET/PUT/DELETE /users, /users/{id} (Admin)",
			"projects":    "GET/POST/PUT/DELETE /projects, /projects/{id}/assign, /projects/{id}/members",
			"backlog":     "GET/POST /projects/{id}/backlog, PUT/DELETE /backlog/{id}",
			"sprints":     "GET/POST /projects/{id}/sprints, GET/PUT/DELETE /sprints/{id}",
			"tasks":       "GET/POST /sprints/{id}/tasks, GET/PUT/DELETE /tasks/{id}, PUT /tasks/{id}/status",
			"performance": "POST /performance/log, GET /performance/me, /performance/user/{id}, /performance/project/{id}",
			"chat":        "POST /chat/send, GET /chat/project/{project_id}",
			"dashboard":   "GET /dashboard/admin, GET /dashboard/employee",
		},
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

// notFoundHandler adds a hint when the caller left URL placeholders in the
// path, a mistake copy-pasted docs produce constantly.
func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	msg := "The requested resource was not found."
	path := r.URL.Path
	if strings.Contains(path, "{") && strings.Contains(path, "}") {
		msg = fmt.Sprintf("Invalid path: '%s'. Replace placeholders with actual IDs (e.g. GET /users/1 not /users/{user_id}).", path)
	}
	writeEnvelope(w, http.StatusNotFound, msg)
}

// methodNotAllowedHandler points POST /projects/{id} callers at the backlog
// endpoint they probably wanted.
func methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	msg := "The method is not allowed for the requested URL."
	path := r.URL.Path
	if strings.HasPrefix(path, "/projects/") &&
		!strings.Contains(path, "/backlog") &&
		!strings.Contains(path, "/assign") &&
		!strings.Contains(path, "/members") {
		parts := strings.Split(strings.Trim(path, "/"), "/")
		if len(parts) >= 2 {
			if _, err := strconv.Atoi(parts[1]); err == nil {
				msg = fmt.Sprintf(
					"POST %s is not allowed. To create a backlog item use POST /projects/%s/backlog with body: {\"title\": \"...\", \"description\": \"...\", \"priority\": 0}",
					path, parts[1])
			}
		}
	}
	writeEnvelope(w, http.StatusMethodNotAllowed, msg)
}

func writeEnvelope(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(transport.APIResponse{Success: false, Message: message})
}
