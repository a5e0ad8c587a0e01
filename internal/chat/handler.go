package chat

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

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

// SendMessage handles POST /chat/send.
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var dto SendMessageDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteAppError(w, err)
		return
	}
	id, _ := internal.IdentityFromContext(r.Context())
	result, err := h.Service.SendMessage(r.Context(), *dto.ProjectID, id.UserID, dto.Message, id.IsAdmin())
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusCreated, "Message sent", result)
}

// ListProjectChat handles GET /chat/project/{projectID}?limit=.
func (h *Handler) ListProjectChat(w http.ResponseWriter, r *http.Request) {
	projectID, ok := h.PathID(w, r, "projectID")
	if !ok {
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	id, _ := internal.IdentityFromContext(r.Context())
	logs, err := h.Service.ListProject(r.Context(), projectID, id.UserID, id.IsAdmin(), limit)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "", map[string]any{"chat_logs": logs, "count": len(logs)})
}
