package backlog

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

// ListItems handles GET /projects/{projectID}/backlog.
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	projectID, ok := h.PathID(w, r, "projectID")
	if !ok {
		return
	}
	id, _ := internal.IdentityFromContext(r.Context())
	items, err := h.Service.ListByProject(r.Context(), projectID, id.ActingEmployeeID())
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "", map[string]any{"backlog_items": items, "count": len(items)})
}

// CreateItem handles POST /projects/{projectID}/backlog.
func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	projectID, ok := h.PathID(w, r, "projectID")
	if !ok {
		return
	}
	var dto CreateItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	item, err := h.Service.Create(r.Context(), projectID, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusCreated, "Backlog item created", item)
}

// UpdateItem handles PUT /backlog/{backlogID}.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	backlogID, ok := h.PathID(w, r, "backlogID")
	if !ok {
		return
	}
	var dto UpdateItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	id, _ := internal.IdentityFromContext(r.Context())
	item, err := h.Service.Update(r.Context(), backlogID, dto, id.ActingEmployeeID())
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "Backlog item updated", item)
}

// DeleteItem handles DELETE /backlog/{backlogID}.
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	backlogID, ok := h.PathID(w, r, "backlogID")
	if !ok {
		return
	}
	if err := h.Service.Delete(r.Context(), backlogID); err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "Backlog item deleted", nil)
}
