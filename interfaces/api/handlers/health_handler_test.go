package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func healthResponse(t *testing.T, checks map[string]HealthCheck) (int, map[string]any) {
	t.Helper()
	app := fiber.New()
	app.Get("/health", NewHealthHandler(checks).Health)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestHealthAllDependenciesUp(t *testing.T) {
	code, body := healthResponse(t, map[string]HealthCheck{
		"database": func(context.Context) error { return nil },
	})

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, map[string]any{"database": "ok"}, body["dependencies"])
}

func TestHealthDegraded(t *testing.T) {
	code, body := healthResponse(t, map[string]HealthCheck{
		"database": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("connection refused") },
	})

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, map[string]any{"database": "ok", "redis": "connection refused"}, body["dependencies"])
}

func TestHealthWithoutChecks(t *testing.T) {
	code, body := healthResponse(t, nil)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}
