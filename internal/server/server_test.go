package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageza/mealplanner/backend/config"
	"github.com/pageza/mealplanner/backend/internal/mealplan"
	"github.com/pageza/mealplanner/backend/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:           "127.0.0.1",
			Port:           "0",
			AllowedOrigins: []string{"http://localhost:5173"},
		},
		Database:  config.DatabaseConfig{Name: "test"},
		Cache:     config.CacheConfig{TTL: time.Minute},
		RateLimit: config.RateLimitConfig{Enabled: true, RequestsPerMinute: 600, Burst: 50},
	}
}

func TestHandler(t *testing.T) {
	db := testdb.NewSeeded(t)
	handler, err := Handler(context.Background(), testConfig(), db, nil, mealplan.BuiltIn(), zap.NewNop())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/mealplan/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var plans []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plans))
	assert.Len(t, plans, 3)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/recipes/id/1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-RateLimit-Limit"))

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
	assert.Contains(t, w.Body.String(), `go_sql_max_open_connections{db_name="test"}`)
}

func TestHandlerFailsOnMissingCatalog(t *testing.T) {
	db := testdb.New(t)
	_, err := Handler(context.Background(), testConfig(), db, nil, mealplan.FileSource{Path: "does-not-exist.yaml"}, zap.NewNop())
	assert.Error(t, err)
}

func TestNewLimiter(t *testing.T) {
	assert.Nil(t, newLimiter(config.RateLimitConfig{Enabled: false}, nil))
	assert.NotNil(t, newLimiter(config.RateLimitConfig{Enabled: true, RequestsPerMinute: 60, Burst: 5}, nil))
}

func TestServeAndShutdown(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	srv := New(testConfig().Server, handler, zap.NewNop())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))
	assert.NoError(t, <-done)
}
