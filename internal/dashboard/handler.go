package dashboard

import (
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

// Dashboard handles GET /dashboard, dispatching on the caller's role so the
// frontend can hit one URL regardless of who is logged in.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	id, _ := internal.IdentityFromContext(r.Context())
	if id.IsAdmin() {
		h.admin(w, r)
		return
	}
	h.employee(w, r, id.UserID)
}

// AdminDashboard handles GET /dashboard/admin.
func (h *Handler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	h.admin(w, r)
}

// EmployeeDashboard handles GET /dashboard/employee for the caller.
func (h *Handler) EmployeeDashboard(w http.ResponseWriter, r *http.Request) {
	id, _ := internal.IdentityFromContext(r.Context())
	h.employee(w, r, id.UserID)
}

func (h *Handler) admin(w http.ResponseWriter, r *http.Request) {
	data, err := h.Service.Admin(r.Context())
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "", data)
}

func (h *Handler) employee(w http.ResponseWriter, r *http.Request, userID int64) {
	data, err := h.Service.Employee(r.Context(), userID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "", data)
}
