package app

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skill-insight/internal/config"
	"skill-insight/internal/pkg/jwt"
	"skill-insight/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListenAddr(t *testing.T) {
	addr, err := ListenAddr("8080")
	require.NoError(t, err)
	assert.Equal(t, ":8080", addr)

	addr, err = ListenAddr(" :9090 ")
	require.NoError(t, err)
	assert.Equal(t, ":9090", addr)

	_, err = ListenAddr("")
	assert.Error(t, err)
}

func newBareApp() *App {
	return New(&Container{
		Config: config.Config{App: config.AppConfig{AppName: "skill-insight-test"}},
		JWT:    jwt.NewHMACService("access", "refresh", time.Minute, time.Hour),
		Hub:    ws.NewHub(nil),
	})
}

func statusOf(t *testing.T, app *App, req *http.Request) (int, map[string]any) {
	t.Helper()
	resp, err := app.Fiber.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	_ = json.Unmarshal(raw, &body)
	return resp.StatusCode, body
}

func TestApp_ProtectedRoutesRequireToken(t *testing.T) {
	a := newBareApp()

	status, body := statusOf(t, a, httptest.NewRequest(http.MethodGet, "/api/v1/me", nil))
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, float64(fiber.StatusUnauthorized), body["status"])

	refresh, err := a.Container.JWT.GenerateRefreshToken(uuid.New())
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me/analytics/progress", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	status, _ = statusOf(t, a, req)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestApp_RequestIDAndNotFound(t *testing.T) {
	a := newBareApp()

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	resp, err := a.Fiber.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/nope", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err = a.Fiber.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get("X-Request-ID"))
}

func TestApp_HealthWithoutDatabase(t *testing.T) {
	status, body := statusOf(t, newBareApp(), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Equal(t, map[string]any{"database": "unconfigured", "cache": "disabled"}, body["data"])
}

func TestApp_MetricsEndpoint(t *testing.T) {
	resp, err := newBareApp().Fiber.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "go_goroutines")
}
