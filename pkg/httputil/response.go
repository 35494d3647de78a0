package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/cfgview/pkg/errors"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// StatusFor maps an error to an HTTP status. Bad input is 422 except for
// an unknown output format, which is 400; everything else is a server
// failure.
func StatusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	if errors.IsInput(err) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// WriteError writes err as an [ErrorResponse].
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	WriteJSON(w, StatusFor(err), ErrorResponse{
		Code:      code,
		Message:   errors.UserMessage(err),
		RequestID: RequestIDFrom(r.Context()),
	})
}
