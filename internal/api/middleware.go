package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/finbook-dev/finbook/internal/logging"
)

// RequestLogger assigns a request ID and logs every request with
// timing. The per-request logger is attached to the context for
// handlers to pick up.
func RequestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.NewString()
			reqLog := log.With().
				Str("request_id", requestID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Logger()

			w.Header().Set("X-Request-Id", requestID)
			start := time.Now()
			next.ServeHTTP(w, r.WithContext(logging.WithContext(r.Context(), reqLog)))
			reqLog.Info().Dur("elapsed", time.Since(start)).Msg("request handled")
		})
	}
}

// errorResponse is the JSON error envelope: a stable machine code plus
// a human-readable message.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Code: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
