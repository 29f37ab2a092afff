package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okCheck(context.Context) error { return nil }

func failingCheck(context.Context) error { return errors.New("connection refused") }

func serveHealth(h *HealthCheckHandler, path string) *httptest.ResponseRecorder {
	router := setupTestRouter()
	h.RegisterRoutes(router)

	req, _ := http.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck_Healthy(t *testing.T) {
	h := NewHealthCheckHandler("gateway-service",
		HealthCheck{Name: "mongodb", Check: okCheck},
		HealthCheck{Name: "redis", Check: okCheck, Optional: true},
	)

	w := serveHealth(h, "/health")

	require.Equal(t, http.StatusOK, w.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "gateway-service", resp.Service)
	assert.Equal(t, map[string]string{"mongodb": "healthy", "redis": "healthy"}, resp.Checks)
}

func TestHealthCheck_OptionalFailureIsWarning(t *testing.T) {
	h := NewHealthCheckHandler("gateway-service",
		HealthCheck{Name: "mongodb", Check: okCheck},
		HealthCheck{Name: "redis", Check: failingCheck, Optional: true},
	)

	w := serveHealth(h, "/health")

	require.Equal(t, http.StatusOK, w.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "warning: connection refused", resp.Checks["redis"])
}

func TestHealthCheck_Unhealthy(t *testing.T) {
	h := NewHealthCheckHandler("gateway-service", HealthCheck{Name: "mongodb", Check: failingCheck})

	w := serveHealth(h, "/health")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "unhealthy", resp.Status)
}

func TestReadinessAndLiveness(t *testing.T) {
	ready := NewHealthCheckHandler("gateway-service", HealthCheck{Name: "mongodb", Check: okCheck})
	notReady := NewHealthCheckHandler("gateway-service", HealthCheck{Name: "mongodb", Check: failingCheck})

	w := serveHealth(ready, "/health/readiness")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ready", w.Body.String())

	w = serveHealth(notReady, "/health/readiness")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "mongodb not ready", w.Body.String())

	w = serveHealth(notReady, "/health/liveness")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alive", w.Body.String())
}
