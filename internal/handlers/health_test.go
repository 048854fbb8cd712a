package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Extra-Chill/extrachill-blocks/internal/services"
)

func TestHealthHandler_Healthy(t *testing.T) {
	h := NewHealthHandler(services.NewMockStorage(), testLogger())

	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "extrachill-blocks", resp.Service)
	assert.Equal(t, "healthy", resp.Components["storage"])
}

func TestHealthHandler_DegradedWhenStorageDown(t *testing.T) {
	storage := services.NewMockStorage()
	storage.PingFunc = func(ctx context.Context) error {
		return errors.New("connection refused")
	}
	h := NewHealthHandler(storage, testLogger())

	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "unhealthy", resp.Components["storage"])
}
