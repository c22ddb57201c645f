// Package httpjson provides the JSON request/response helpers shared by all
// feature handlers. Responses always carry application/json; errors use a
// stable {"error": {"code": ..., "message": ...}} envelope so API clients
// can branch on the code without parsing prose.
package httpjson

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/campuslink/careerhub/internal/app/system/limits"
)

// Error codes used across the API.
const (
	CodeBadRequest       = "bad_request"
	CodeUnauthorized     = "unauthorized"
	CodePermissionDenied = "permission_denied"
	CodeNotFound         = "not_found"
	CodeConflict         = "conflict"
	CodeContentFlagged   = "content_flagged"
	CodeRateLimited      = "rate_limited"
	CodeServerError      = "server_error"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

// Write sends v as JSON with the given status code.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK sends v as JSON with 200.
func OK(w http.ResponseWriter, v any) {
	Write(w, http.StatusOK, v)
}

// Error sends the standard error envelope.
func Error(w http.ResponseWriter, status int, code, message string) {
	Write(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

// BadRequest sends a 400 with the bad_request code.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, CodeBadRequest, message)
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, CodeUnauthorized, "sign in required")
}

// Forbidden sends a 403 with the permission_denied code.
func Forbidden(w http.ResponseWriter, message string) {
	Error(w, http.StatusForbidden, CodePermissionDenied, message)
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, CodeNotFound, message)
}

// Conflict sends a 409 with the given code (conflict-family errors carry
// workflow-specific codes such as "already_member").
func Conflict(w http.ResponseWriter, code, message string) {
	Error(w, http.StatusConflict, code, message)
}

// ServerError sends a 500. The underlying error is logged by the caller,
// never echoed to the client.
func ServerError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, CodeServerError, "an internal error occurred")
}

// Decode reads the request body into dst, enforcing the standard JSON body
// cap and rejecting trailing garbage.
func Decode(r *http.Request, dst any) error {
	return DecodeLimited(r, dst, limits.MaxJSONBody)
}

// DecodeLimited is Decode with an explicit size cap, for endpoints that
// accept large payloads such as verification document uploads.
func DecodeLimited(r *http.Request, dst any, maxBytes int64) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return err
	}
	// A second decode must hit EOF, otherwise the body held more than one
	// JSON value.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}
