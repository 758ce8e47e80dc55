package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-todo/internal/middleware"
	"smart-todo/internal/model"
	"smart-todo/internal/task"
	taskHTTP "smart-todo/internal/task/delivery/http"
	"smart-todo/pkg/log"
)

type listOnlyUseCase struct {
	task.UseCase
	scope model.Scope
}

func (u *listOnlyUseCase) List(ctx context.Context, sc model.Scope, input task.ListInput) (task.ListOutput, error) {
	u.scope = sc
	return task.ListOutput{Page: 1, Limit: 20}, nil
}

func newTestServer(t *testing.T, uc task.UseCase) *HTTPServer {
	t.Helper()
	l := log.NewNop()
	srv, err := New(l, Config{
		Logger:      l,
		Port:        8080,
		Mode:        gin.TestMode,
		Environment: string(model.EnvironmentDevelopment),
		TaskHandler: taskHTTP.New(l, uc),
		Middleware:  middleware.New(l, 0),
	})
	require.NoError(t, err)
	return srv
}

func TestNew_Validation(t *testing.T) {
	l := log.NewNop()
	tcs := map[string]Config{
		"missing mode":    {Port: 1, TaskHandler: taskHTTP.New(l, &listOnlyUseCase{})},
		"missing port":    {Mode: gin.TestMode, TaskHandler: taskHTTP.New(l, &listOnlyUseCase{})},
		"missing handler": {Mode: gin.TestMode, Port: 1},
	}
	for name, cfg := range tcs {
		t.Run(name, func(t *testing.T) {
			_, err := New(l, cfg)
			assert.Error(t, err)
		})
	}
}

func TestSystemRoutes(t *testing.T) {
	srv := newTestServer(t, &listOnlyUseCase{})

	for _, path := range []string{"/health", "/ready", "/live"} {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, path, nil)
			srv.Handler().ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			var body struct {
				Data map[string]string `json:"data"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, ServiceName, body.Data["service"])
		})
	}
}

func TestReadyCheck_DependencyDown(t *testing.T) {
	l := log.NewNop()
	srv, err := New(l, Config{
		Logger:      l,
		Port:        8080,
		Mode:        gin.TestMode,
		Readiness:   func(ctx context.Context) error { return errors.New("database is locked") },
		TaskHandler: taskHTTP.New(l, &listOnlyUseCase{}),
		Middleware:  middleware.New(l, 0),
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/live", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTaskRoutesMounted(t *testing.T) {
	uc := &listOnlyUseCase{}
	srv := newTestServer(t, uc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
	req.Header.Set(middleware.HeaderUserID, "u-1")
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u-1", uc.scope.UserID)
}

func TestTelegramRouteAbsentWithoutHandler(t *testing.T) {
	srv := newTestServer(t, &listOnlyUseCase{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook/telegram", nil)
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(404), body["error_code"])
}

func TestModeFor(t *testing.T) {
	assert.Equal(t, gin.ReleaseMode, modeFor(string(model.EnvironmentProduction)))
	assert.Equal(t, gin.DebugMode, modeFor(string(model.EnvironmentDevelopment)))
	assert.Equal(t, gin.DebugMode, modeFor(""))
}
