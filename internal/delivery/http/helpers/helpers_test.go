package helpers

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lineupplanner/internal/domain"
)

type sampleRequest struct {
	Name string `json:"name"`
}

func (s sampleRequest) Validate() []string {
	if s.Name == "" {
		return []string{"name is required"}
	}
	return nil
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantOK  bool
		wantMsg string
	}{
		{name: "valid", body: `{"name":"x"}`, wantOK: true},
		{name: "unknown field", body: `{"name":"x","extra":1}`, wantMsg: "unknown field"},
		{name: "malformed", body: `{`, wantMsg: "invalid request body"},
		{name: "trailing data", body: `{"name":"x"} {"name":"y"}`, wantMsg: "unexpected data"},
		{name: "oversized", body: `{"name":"` + strings.Repeat("x", maxBodyBytes) + `"}`, wantMsg: "too large"},
		{name: "fails validation", body: `{"name":""}`, wantMsg: "name is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dest sampleRequest
			ok := DecodeAndValidate(rec, req, &dest)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				return
			}
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeEnvelope(t, rec)
			require.NotNil(t, resp.Error)
			assert.Equal(t, ErrCodeBadRequest, resp.Error.Code)
			assert.Contains(t, resp.Error.Message, tt.wantMsg)
		})
	}
}

func TestWriteServiceError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{fmt.Errorf("bad: %w", domain.ErrInvalidInput), http.StatusBadRequest, ErrCodeBadRequest},
		{fmt.Errorf("event x: %w", domain.ErrNotFound), http.StatusNotFound, ErrCodeNotFound},
		{domain.ErrForbidden, http.StatusForbidden, ErrCodeForbidden},
		{domain.ErrEventLocked, http.StatusLocked, ErrCodeEventLocked},
		{io.ErrUnexpectedEOF, http.StatusInternalServerError, ErrCodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteServiceError(rec, httptest.NewRequest(http.MethodGet, "/x", nil), logger, tt.err)
			assert.Equal(t, tt.wantStatus, rec.Code)
			resp := decodeEnvelope(t, rec)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Nil(t, resp.Data)
		})
	}
}

func TestWriteJSONSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSONSuccess(rec, http.StatusCreated, map[string]int{"n": 1})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"data":{"n":1},"error":null}`, rec.Body.String())
}

type multiRequest struct {
	A string `json:"a"`
	B string `json:"b"`
}

func (m multiRequest) Validate() []string {
	var errs []string
	if m.A == "" {
		errs = append(errs, "a is required")
	}
	if m.B == "" {
		errs = append(errs, "b is required")
	}
	return errs
}

func TestDecodeAndValidate_Details(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))

	require.False(t, DecodeAndValidate(rec, req, &multiRequest{}))

	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "a is required; b is required", resp.Error.Message)
	assert.Equal(t, []string{"a is required", "b is required"}, resp.Error.Details)
}
