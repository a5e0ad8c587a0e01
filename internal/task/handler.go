package task

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mohanbhogavarapu07/vsm-backend/internal"
	"github.com/mohanbhogavarapu07/vsm-backend/internal/transport"
	"github.com/mohanbhogavarapu07/vsm-backend/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// ListSprintTasks handles GET /sprints/{sprintID}/tasks.
func (h *Handler) ListSprintTasks(w http.ResponseWriter, r *http.Request) {
	sprintID, ok := h.PathID(w, r, "sprintID")
	if !ok {
		return
	}
	id, _ := internal.IdentityFromContext(r.Context())
	tasks, err := h.Service.ListBySprint(r.Context(), sprintID, id.ActingEmployeeID())
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "", map[string]any{"tasks": tasks, "count": len(tasks)})
}

// ListTasks handles GET /tasks.
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	id, _ := internal.IdentityFromContext(r.Context())
	tasks, err := h.Service.ListAll(r.Context(), id.ActingEmployeeID())
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "", map[string]any{"tasks": tasks, "count": len(tasks)})
}

// CreateTask handles POST /sprints/{sprintID}/tasks.
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	sprintID, ok := h.PathID(w, r, "sprintID")
	if !ok {
		return
	}
	var dto CreateTaskDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	t, err := h.Service.Create(r.Context(), sprintID, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusCreated, "Task created", t)
}

// GetTask handles GET /tasks/{taskID}.
func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := h.PathID(w, r, "taskID")
	if !ok {
		return
	}
	id, _ := internal.IdentityFromContext(r.Context())
	t, err := h.Service.Get(r.Context(), taskID, id.ActingEmployeeID())
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "", t)
}

// UpdateTask handles PUT /tasks/{taskID}.
func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := h.PathID(w, r, "taskID")
	if !ok {
		return
	}
	var dto UpdateTaskDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	id, _ := internal.IdentityFromContext(r.Context())
	t, err := h.Service.Update(r.Context(), taskID, dto, id.ActingEmployeeID())
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "Task updated", t)
}

// UpdateTaskStatus handles PUT /tasks/{taskID}/status.
func (h *Handler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	taskID, ok := h.PathID(w, r, "taskID")
	if !ok {
		return
	}
	var dto UpdateStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	id, _ := internal.IdentityFromContext(r.Context())
	t, err := h.Service.UpdateStatus(r.Context(), taskID, dto, id.ActingEmployeeID())
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "Status updated", t)
}

// DeleteTask handles DELETE /tasks/{taskID}.
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := h.PathID(w, r, "taskID")
	if !ok {
		return
	}
	if err := h.Service.Delete(r.Context(), taskID); err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "Task deleted", nil)
}
