package performance

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

// CreateLog handles POST /performance/log (and its /logs alias).
func (h *Handler) CreateLog(w http.ResponseWriter, r *http.Request) {
	var dto CreateLogDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	l, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusCreated, "Performance log created", l)
}

// MyPerformance handles GET /performance/me for the authenticated caller.
func (h *Handler) MyPerformance(w http.ResponseWriter, r *http.Request) {
	id, _ := internal.IdentityFromContext(r.Context())
	logs, err := h.Service.ListByUser(r.Context(), id.UserID, id.ActingEmployeeID())
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "", map[string]any{"performance_logs": logs, "count": len(logs)})
}

// UserPerformance handles GET /performance/user/{userID}.
func (h *Handler) UserPerformance(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.PathID(w, r, "userID")
	if !ok {
		return
	}
	logs, err := h.Service.ListByUser(r.Context(), userID, nil)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "", map[string]any{"performance_logs": logs, "count": len(logs)})
}

// ProjectPerformance handles GET /performance/project/{projectID}.
func (h *Handler) ProjectPerformance(w http.ResponseWriter, r *http.Request) {
	projectID, ok := h.PathID(w, r, "projectID")
	if !ok {
		return
	}
	logs, err := h.Service.ListByProject(r.Context(), projectID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "", map[string]any{"performance_logs": logs, "count": len(logs)})
}
