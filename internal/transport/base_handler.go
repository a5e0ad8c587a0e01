package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/mohanbhogavarapu07/vsm-backend/internal"
	"github.com/mohanbhogavarapu07/vsm-backend/pkg/logger"
)

// APIResponse is the envelope every endpoint answers with.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteSuccess writes the success envelope.
func (h *BaseHandler) WriteSuccess(w http.ResponseWriter, status int, message string, data any) {
	if message == "" {
		message = "Success"
	}
	h.WriteJSON(w, status, APIResponse{Success: true, Message: message, Data: data})
}

// WriteError writes an error envelope with an explicit status.
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.Logger.Warn("http error", "status", status, "message", message)
	h.WriteJSON(w, status, APIResponse{Success: false, Message: message})
}

// PathID parses a numeric chi URL parameter, answering 400 itself when the
// value is not an integer.
func (h *BaseHandler) PathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, name+" must be a valid integer")
		return 0, false
	}
	return id, true
}

// WriteAppError maps a typed service error onto its HTTP status. Unknown
// error values become opaque 500s so internals never leak.
func (h *BaseHandler) WriteAppError(w http.ResponseWriter, err error) {
	if appErr, ok := internal.IsAppError(err); ok {
		if appErr.Cause != nil {
			h.Logger.Error("request failed", "type", appErr.Type, "code", appErr.Code, "cause", appErr.Cause)
		}
		h.WriteError(w, appErr.StatusCode, appErr.Message)
		return
	}
	h.Logger.Error("unclassified error", "error", err)
	h.WriteError(w, http.StatusInternalServerError, "Internal server error")
}
