package sprint

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

// ListSprints handles GET /projects/{projectID}/sprints.
func (h *Handler) ListSprints(w http.ResponseWriter, r *http.Request) {
	projectID, ok := h.PathID(w, r, "projectID")
	if !ok {
		return
	}
	id, _ := internal.IdentityFromContext(r.Context())
	sprints, err := h.Service.ListByProject(r.Context(), projectID, id.ActingEmployeeID())
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "", map[string]any{"sprints": sprints, "count": len(sprints)})
}

// CreateSprint handles POST /projects/{projectID}/sprints.
func (h *Handler) CreateSprint(w http.ResponseWriter, r *http.Request) {
	projectID, ok := h.PathID(w, r, "projectID")
	if !ok {
		return
	}
	var dto CreateSprintDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sp, err := h.Service.Create(r.Context(), projectID, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusCreated, "Sprint created", sp)
}

// GetSprint handles GET /sprints/{sprintID}.
func (h *Handler) GetSprint(w http.ResponseWriter, r *http.Request) {
	sprintID, ok := h.PathID(w, r, "sprintID")
	if !ok {
		return
	}
	id, _ := internal.IdentityFromContext(r.Context())
	sp, err := h.Service.Get(r.Context(), sprintID, id.ActingEmployeeID())
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "", sp)
}

// UpdateSprint handles PUT /sprints/{sprintID}.
func (h *Handler) UpdateSprint(w http.ResponseWriter, r *http.Request) {
	sprintID, ok := h.PathID(w, r, "sprintID")
	if !ok {
		return
	}
	var dto UpdateSprintDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sp, err := h.Service.Update(r.Context(), sprintID, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "Sprint updated", sp)
}

// DeleteSprint handles DELETE /sprints/{sprintID}.
func (h *Handler) DeleteSprint(w http.ResponseWriter, r *http.Request) {
	sprintID, ok := h.PathID(w, r, "sprintID")
	if !ok {
		return
	}
	if err := h.Service.Delete(r.Context(), sprintID); err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "Sprint deleted", nil)
}
