package web

// errors.go provides unified error response handling for the web layer.
//
// Every error is:
//   - Logged with full technical details and the request ID (server-side)
//   - Returned to clients as a user-friendly message with a support code
//   - Formatted as JSON for API routes and as an HTML page otherwise
//
// Validation errors additionally carry per-field messages keyed by the
// field's JSON name so clients can highlight the offending inputs.

import (
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/Swayam-Swaroop-Sahu/Mini-Project/internal/core"
	"github.com/Swayam-Swaroop-Sahu/Mini-Project/internal/logging"
	"github.com/Swayam-Swaroop-Sahu/Mini-Project/internal/web/templates"
)

var errRateLimited = errors.New("rate limit exceeded")

// ErrorResponse is the JSON body of every API error.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Action string            `json:"action,omitempty"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

// respondError logs err and writes the mapped user message.
// Client faults (4xx) are logged at info, server faults at error.
func respondError(w http.ResponseWriter, r *http.Request, err error, status int) {
	msg := core.MapError(err)

	log := logging.FromContext(r.Context())
	attrs := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", msg.Code,
	}
	if status >= 500 {
		log.Error("request error", attrs...)
	} else {
		log.Info("request rejected", attrs...)
	}

	if !wantsJSON(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		templates.ErrorPage(msg.Message, msg.Action, msg.Code).Render(r.Context(), w)
		return
	}

	resp := ErrorResponse{
		Error:  msg.Message,
		Action: msg.Action,
		Code:   msg.Code,
	}
	var verr *core.ValidationError
	if errors.As(err, &verr) {
		resp.Fields = verr.WireMessages()
	}
	writeJSON(w, status, resp)
}

// statusFor picks the HTTP status for a service error.
func statusFor(err error) int {
	switch {
	case core.IsValidationError(err), errors.Is(err, core.ErrMalformedRequest):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrIdempotencyKeyReused):
		return http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrTooManyExports):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// wantsJSON reports whether the client should get a JSON error.
func wantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") || r.URL.Path == "/healthz" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json") ||
		strings.Contains(r.Header.Get("Content-Type"), "application/json")
}

// clientIP returns the request's client address without the port.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// withRequestMetadata records the client IP and User-Agent for service logs.
func withRequestMetadata(r *http.Request) *http.Request {
	ctx := core.ContextWithIPAddress(r.Context(), clientIP(r))
	ctx = core.ContextWithUserAgent(ctx, r.UserAgent())
	return r.WithContext(ctx)
}
