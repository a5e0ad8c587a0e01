package project

import (
	"encoding/json"
	"fmt"
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

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	id, _ := internal.IdentityFromContext(r.Context())
	projects, err := h.Service.List(r.Context(), id.ActingEmployeeID())
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "", map[string]any{"projects": projects, "count": len(projects)})
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	projectID, ok := h.PathID(w, r, "projectID")
	if !ok {
		return
	}
	id, _ := internal.IdentityFromContext(r.Context())
	p, err := h.Service.Get(r.Context(), projectID, id.ActingEmployeeID())
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "", p)
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var dto CreateProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusCreated, "Project created", p)
}

func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	projectID, ok := h.PathID(w, r, "projectID")
	if !ok {
		return
	}
	var dto UpdateProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := h.Service.Update(r.Context(), projectID, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "Project updated", p)
}

func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	projectID, ok := h.PathID(w, r, "projectID")
	if !ok {
		return
	}
	if err := h.Service.Delete(r.Context(), projectID); err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "Project deleted", nil)
}

// Assign handles POST /projects/{id}/assign for both the single and batch
// payload shapes.
func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	projectID, ok := h.PathID(w, r, "projectID")
	if !ok {
		return
	}
	var dto AssignDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch {
	case dto.EmployeeIDs != nil:
		if len(dto.EmployeeIDs) == 0 {
			h.WriteError(w, http.StatusBadRequest, "employee_ids must not be empty")
			return
		}
		result, err := h.Service.AssignMany(r.Context(), projectID, dto.EmployeeIDs)
		if err != nil {
			h.WriteAppError(w, err)
			return
		}
		msg := fmt.Sprintf("%d employee(s) assigned", len(result.Assignments))
		if result.Skipped || len(result.Errors) > 0 {
			msg += " (some skipped - already assigned)"
		}
		h.WriteSuccess(w, http.StatusCreated, msg, map[string]any{
			"assignments": result.Assignments,
			"count":       len(result.Assignments),
		})
	case dto.EmployeeID != nil:
		a, err := h.Service.Assign(r.Context(), projectID, *dto.EmployeeID)
		if err != nil {
			h.WriteAppError(w, err)
			return
		}
		h.WriteSuccess(w, http.StatusCreated, "Employee assigned", a)
	default:
		h.WriteError(w, http.StatusBadRequest,
			`Provide employee_id (single) or employee_ids (array). Example: {"employee_ids": [1, 2, 3]}`)
	}
}

func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	projectID, ok := h.PathID(w, r, "projectID")
	if !ok {
		return
	}
	members, err := h.Service.ListMembers(r.Context(), projectID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "", map[string]any{"members": members, "count": len(members)})
}

func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	projectID, ok := h.PathID(w, r, "projectID")
	if !ok {
		return
	}
	userID, ok := h.PathID(w, r, "userID")
	if !ok {
		return
	}
	if err := h.Service.RemoveMember(r.Context(), projectID, userID); err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "Member removed", nil)
}
