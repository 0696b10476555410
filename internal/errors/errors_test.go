package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domaingen/domaingen/internal/server/middleware"
)

func TestHTTPStatusFromCode(t *testing.T) {
	cases := map[string]int{
		"INVALID_INPUT":       http.StatusBadRequest,
		"VALIDATION_FAILED":   http.StatusBadRequest,
		"NOT_FOUND":           http.StatusNotFound,
		"METHOD_NOT_ALLOWED":  http.StatusMethodNotAllowed,
		"TIMEOUT":             http.StatusGatewayTimeout,
		"SERVICE_UNAVAILABLE": http.StatusServiceUnavailable,
		"DATABASE_ERROR":      http.StatusInternalServerError,
		"SOMETHING_ELSE":      http.StatusInternalServerError,
	}

	for code, status := range cases {
		assert.Equal(t, status, HTTPStatusFromCode(code), code)
	}
}

func TestEnsureEnvelopeWrapsPlainErrors(t *testing.T) {
	env := EnsureEnvelope(stderrors.New("disk full"))
	require.Equal(t, "INTERNAL_ERROR", env.Code)
	require.Equal(t, "disk full", env.Context["wrapped_error"])

	original := NewNotFoundError("no such item")
	require.Same(t, original, EnsureEnvelope(original))

	require.Equal(t, "INTERNAL_ERROR", EnsureEnvelope(nil).Code)
}

func TestWrapUsesRequestIDForCorrelation(t *testing.T) {
	ctx := context.WithValue(context.Background(), middleware.RequestIDContextKey, "req-123")

	env := WrapDatabaseError(ctx, stderrors.New("locked"), "failed to save item")
	require.Equal(t, "DATABASE_ERROR", env.Code)
	require.Equal(t, "req-123", env.CorrelationID)
	require.Equal(t, "locked", env.Context["wrapped_error"])
}

func TestRespondWithErrorWritesEnvelope(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/items", nil)
	req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDContextKey, "req-456"))
	rec := httptest.NewRecorder()

	RespondWithError(rec, req, NewServiceUnavailableError("exporter down"))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body HTTPErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	require.Equal(t, "exporter down", body.Error.Message)
	require.Equal(t, "req-456", body.Error.RequestID)
}
