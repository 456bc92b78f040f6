package web

// errors.go provides unified error response handling for the web layer.
//
// Every error is logged with full technical detail server-side and returned
// to the client as a user-friendly message with a support code via
// core.MapError. Raw error text never reaches the client.

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"sheetsub/internal/core"
)

// ErrorResponse is the JSON structure for API error responses. Code is the
// machine-readable support code; Message and Action are for humans.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError logs the technical error and writes the sanitized JSON
// rendering to the client.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)

	slog.Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
		"request_id", middleware.GetReqID(r.Context()),
	)

	writeJSON(w, statusCode, ErrorResponse{
		Error:   userMsg.Message,
		Message: userMsg.Message,
		Action:  userMsg.Action,
		Code:    userMsg.Code,
	})
}

// writeJSON encodes v as JSON with the given status code.
// Encoding errors are logged since headers are already sent.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
