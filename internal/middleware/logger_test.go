package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	Logger(inner, log).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusTeapot, rr.Code)

	requestID := rr.Header().Get("X-Request-ID")
	assert.NotEmpty(t, requestID)
	_, err := uuid.Parse(requestID)
	assert.NoError(t, err, "request id should be a uuid")
}
