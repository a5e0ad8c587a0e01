package auth

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

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

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	payload, err := h.Service.Register(r.Context(), dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusCreated, "Registered successfully", payload)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	dto, err := decodeLoginBody(r)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	payload, err := h.Service.Login(r.Context(), dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "Login successful", payload)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := internal.IdentityFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, internal.ErrInvalidToken.Message)
		return
	}
	u, err := h.Service.CurrentUser(r.Context(), id.UserID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "OK", u)
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	id, ok := internal.IdentityFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, internal.ErrInvalidToken.Message)
		return
	}
	payload, err := h.Service.Refresh(r.Context(), id.UserID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "Token refreshed", payload)
}

// decodeLoginBody accepts JSON regardless of Content-Type, and falls back to
// form-encoded credentials; some frontends post login forms directly.
func decodeLoginBody(r *http.Request) (LoginDTO, error) {
	var dto LoginDTO

	body, err := io.ReadAll(r.Body)
	if err != nil || len(body) == 0 {
		return dto, internal.NewValidationError(
			`Request body is required. Send JSON: {"email": "...", "password": "..."} or form data with email and password.`,
			internal.ErrCodeValidationFailed)
	}

	if json.Unmarshal(body, &dto) == nil {
		return dto, nil
	}

	values, err := url.ParseQuery(strings.TrimSpace(string(body)))
	if err != nil || len(values) == 0 {
		return dto, internal.NewValidationError(
			`Request body is required. Send JSON: {"email": "...", "password": "..."} or form data with email and password.`,
			internal.ErrCodeValidationFailed)
	}
	dto.Email = values.Get("email")
	dto.Username = values.Get("username")
	dto.Password = values.Get("password")
	return dto, nil
}
