package helpers

import (
	"encoding/json"
	"net/http"
)

// Error codes carried in APIError.Code.
const (
	ErrCodeBadRequest    = "bad_request"
	ErrCodeNotFound      = "not_found"
	ErrCodeForbidden     = "forbidden"
	ErrCodeEventLocked   = "event_locked"
	ErrCodeInternalError = "internal_error"
)

// APIError is the error object in the response envelope.
// Details lists individual validation failures when there are several.
// swagger:model APIError
type APIError struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// APIResponse is the envelope for every JSON response: exactly one of Data and Error is set.
// swagger:model APIResponse
type APIResponse struct {
	Data  any       `json:"data"`
	Error *APIError `json:"error"`
}

// WriteJSONSuccess writes statusCode and data wrapped in the envelope.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, data any) {
	writeEnvelope(w, statusCode, APIResponse{Data: data})
}

// WriteJSONError writes statusCode and an error envelope with the given code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	writeEnvelope(w, statusCode, APIResponse{Error: &APIError{Code: code, Message: message}})
}

func writeEnvelope(w http.ResponseWriter, statusCode int, resp APIResponse) {
	h := w.Header()
	h.Set("Content-Type", "application/json")
	// The session changes with every edit; nothing here is cacheable.
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}
