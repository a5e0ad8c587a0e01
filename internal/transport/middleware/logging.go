package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Request and response bodies are logged for debugging, so anything that
// looks like a credential has to be masked before it reaches the log stream.
var sensitiveFields = []string{
	"password",
	"password_hash",
	"token",
	"access_token",
	"authorization",
	"secret",
	"key",
	"api_key",
	"credential",
	"auth",
}

const maxLoggedBody = 4096

// LoggingMiddleware logs every request and its response, keyed by the trace
// id RequestID stamped on the request. 4xx responses log at warn, 5xx at
// error.
func LoggingMiddleware(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			traceID := r.Header.Get("X-Trace-ID")

			var reqBody []byte
			if r.Body != nil {
				reqBody, _ = io.ReadAll(r.Body)
				r.Body = io.NopCloser(bytes.NewReader(reqBody))
			}

			logger.Info("incoming request",
				"trace_id", traceID,
				"method", r.Method,
				"path", r.URL.Path,
				"query", r.URL.RawQuery,
				"remote_addr", r.RemoteAddr,
				"user_agent", r.UserAgent(),
				"body", maskedBody(reqBody),
			)

			rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			level := slog.LevelInfo
			switch {
			case rec.status >= 500:
				level = slog.LevelError
			case rec.status >= 400:
				level = slog.LevelWarn
			}
			logger.Log(r.Context(), level, "response",
				"trace_id", traceID,
				"status_code", rec.status,
				"duration_ms", time.Since(start).Milliseconds(),
				"response_size", rec.size,
				"body", maskedBody(rec.body.Bytes()),
			)
		})
	}
}

// responseRecorder captures the status and body while passing writes through.
type responseRecorder struct {
	http.ResponseWriter
	status int
	size   int
	body   bytes.Buffer
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	if r.body.Len() < maxLoggedBody {
		r.body.Write(b[:min(len(b), maxLoggedBody-r.body.Len())])
	}
	r.size += len(b)
	return r.ResponseWriter.Write(b)
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, field := range sensitiveFields {
		if strings.Contains(lower, field) {
			return true
		}
	}
	return false
}

// maskedBody renders a body for logging with credential-like JSON fields
// replaced by a marker. Non-JSON bodies that mention a sensitive field are
// dropped wholesale since they cannot be masked selectively.
func maskedBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		if isSensitiveKey(string(body)) {
			return "[FILTERED]"
		}
		return string(body)
	}
	masked, err := json.Marshal(maskJSON(parsed))
	if err != nil {
		return "[FILTERED]"
	}
	return string(masked)
}

func maskJSON(data any) any {
	switch v := data.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, value := range v {
			if isSensitiveKey(key) {
				out[key] = "[FILTERED]"
			} else {
				out[key] = maskJSON(value)
			}
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = maskJSON(item)
		}
		return out
	default:
		return v
	}
}
