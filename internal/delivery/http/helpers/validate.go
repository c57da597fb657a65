package helpers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// maxBodyBytes caps request bodies. Lineup requests are a handful of short fields.
const maxBodyBytes = 64 << 10

// Validator is implemented by request DTOs that support validation.
// Validate returns a slice of error messages; nil or empty means valid.
type Validator interface {
	Validate() []string
}

// DecodeAndValidate decodes exactly one JSON object from the body into dest, rejecting
// unknown fields, then runs Validate when dest implements Validator. On failure it
// writes a 400 and returns false; callers return immediately in that case.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	err := dec.Decode(dest)
	if err == nil && dec.More() {
		err = errors.New("unexpected data after the JSON object")
	}
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body: "+err.Error())
		return false
	}
	if v, ok := dest.(Validator); ok {
		if errs := v.Validate(); len(errs) > 0 {
			writeEnvelope(w, http.StatusBadRequest, APIResponse{Error: &APIError{
				Code:    ErrCodeBadRequest,
				Message: strings.Join(errs, "; "),
				Details: errs,
			}})
			return false
		}
	}
	return true
}
