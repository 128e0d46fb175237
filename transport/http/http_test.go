package http

import (
	"micelio/config"
	"micelio/infras/otel/mocks"
	"micelio/permissions"
	"micelio/shared/cache"
	"micelio/transport/http/middleware"
	"micelio/transport/http/router"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newTestServer(t *testing.T) *HTTP {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goRedis.NewClient(&goRedis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{}
	cfg.App.CORS.Enable = true
	cfg.App.CORS.AllowedOrigins = []string{"http://localhost:3000"}
	cfg.App.CORS.AllowedMethods = []string{http.MethodGet, http.MethodPost}

	app := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, cache.NewRedisCache(client, mocks.NewOtel()))
	admin := middleware.NewAdminMiddleware(mocks.NewOtel(), permissions.Get(), cfg)

	return New(cfg, router.New(router.DomainHandlers{}), app, admin)
}

func TestHTTP_Health(t *testing.T) {
	server := newTestServer(t)
	handler := server.Handler()

	tests := []struct {
		name         string
		state        ServerState
		expectedCode int
	}{
		{name: "ready", state: ServerStateReady, expectedCode: http.StatusOK},
		{name: "grace period", state: ServerStateInGracePeriod, expectedCode: http.StatusServiceUnavailable},
		{name: "cleanup period", state: ServerStateInCleanupPeriod, expectedCode: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server.state.Store(int32(tt.state))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.expectedCode, rec.Code)
		})
	}
}

func TestHTTP_Metrics(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(t).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestHTTP_CORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/v1/bookings", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := httptest.NewRecorder()
	newTestServer(t).Handler().ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHTTP_HandlerIsBuiltOnce(t *testing.T) {
	server := newTestServer(t)

	assert.Same(t, server.Handler(), server.Handler())
	assert.Equal(t, ServerStateReady, server.State())
}

func TestHTTP_CleanupRunsInReverse(t *testing.T) {
	server := newTestServer(t)

	var order []string
	server.OnShutdown(func() { order = append(order, "store") })
	server.OnShutdown(func() { order = append(order, "tracer") })

	server.runCleanup()

	assert.Equal(t, []string{"tracer", "store"}, order)
}
