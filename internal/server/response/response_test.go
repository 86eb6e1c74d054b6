package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/humansort/internal/store"
	"github.com/agentstation/humansort/pkg/errors"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestOKAndCreated(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, map[string]int{"count": 3})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	resp := decode(t, rec)
	assert.Nil(t, resp.Error)
	assert.Equal(t, map[string]any{"count": float64(3)}, resp.Data)

	rec = httptest.NewRecorder()
	Created(rec, "x")
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"insufficient", &errors.InsufficientItemsError{Have: 3, Need: 5}, http.StatusConflict, CodeInsufficientItems},
		{"duplicate item", errors.NewDuplicateItemError("A"), http.StatusConflict, CodeDuplicateItem},
		{"state exists", &errors.AlreadyExistsError{Resource: "state", ID: "x"}, http.StatusConflict, CodeDuplicateItem},
		{"unknown item", errors.NewUnknownItemError("Z"), http.StatusNotFound, CodeNotFound},
		{"missing state", store.ErrNotFound, http.StatusNotFound, CodeNotFound},
		{"too few", &errors.TooFewItemsError{Got: 1}, http.StatusBadRequest, CodeTooFewItems},
		{"batch size", errors.NewInvalidBatchSizeError(10, 2, 9), http.StatusBadRequest, CodeInvalidBatchSize},
		{"validation", errors.NewValidationError("name", "", "empty"), http.StatusBadRequest, CodeBadRequest},
		{"lock timeout", errors.NewTimeoutError("lock", "", "busy"), http.StatusServiceUnavailable, CodeServiceUnavailable},
		{"wrapped", fmt.Errorf("judge: %w", errors.NewUnknownItemError("Q")), http.StatusNotFound, CodeNotFound},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := Status(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestErr(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	rec := httptest.NewRecorder()
	Err(rec, req, errors.NewDuplicateItemError("A"))
	assert.Equal(t, http.StatusConflict, rec.Code)
	resp := decode(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeDuplicateItem, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, `"A"`)

	rec = httptest.NewRecorder()
	Err(rec, req, errors.New("secret path /etc/x"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestDecode(t *testing.T) {
	var body struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"tea"}`))
	require.NoError(t, Decode(httptest.NewRecorder(), req, &body))
	assert.Equal(t, "tea", body.Name)

	for _, raw := range []string{`{"nme":"tea"}`, `not json`, ``} {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(raw))
		err := Decode(httptest.NewRecorder(), req, &body)
		assert.True(t, errors.IsValidationError(err), "body %q", raw)
	}
}
