package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/code4imabari/kyukyu-annai/internal/adapters/cache"
	"github.com/code4imabari/kyukyu-annai/internal/api/middleware"
)

func countingHandler(hits *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	})
}

func TestCacheMiddleware_CachesScheduleResponses(t *testing.T) {
	var hits int
	m := middleware.NewCacheMiddleware(cache.NewMemoryAdapter())
	handler := m.Middleware(countingHandler(&hits))

	w1 := httptest.NewRecorder()
	handler.ServeHTTP(w1, httptest.NewRequest("GET", "/api/schedule/dates", nil))
	assert.Equal(t, "MISS", w1.Header().Get("X-Cache"))

	w2 := httptest.NewRecorder()
	handler.ServeHTTP(w2, httptest.NewRequest("GET", "/api/schedule/dates", nil))
	assert.Equal(t, "HIT", w2.Header().Get("X-Cache"))

	assert.Equal(t, 1, hits)
	assert.Equal(t, w1.Body.String(), w2.Body.String())
}

func TestCacheMiddleware_DayRoutesCachedPerDate(t *testing.T) {
	var hits int
	m := middleware.NewCacheMiddleware(cache.NewMemoryAdapter())
	handler := m.Middleware(countingHandler(&hits))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/schedule/days/2025-01-01", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/schedule/days/2025-01-02", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/schedule/days/2025-01-01", nil))

	assert.Equal(t, 2, hits)
}

func TestCacheMiddleware_SkipsAudioRoutes(t *testing.T) {
	var hits int
	m := middleware.NewCacheMiddleware(cache.NewMemoryAdapter())
	handler := m.Middleware(countingHandler(&hits))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/schedule/days/2025-01-01/audio", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/schedule/days/2025-01-01/audio", nil))

	assert.Equal(t, 2, hits)
}

func TestCacheMiddleware_SkipsErrorResponses(t *testing.T) {
	var hits int
	m := middleware.NewCacheMiddleware(cache.NewMemoryAdapter())
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found"}`))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/schedule/dates", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/schedule/dates", nil))

	assert.Equal(t, 2, hits)
}

func TestCacheMiddleware_SkipsUnknownRoutes(t *testing.T) {
	var hits int
	m := middleware.NewCacheMiddleware(cache.NewMemoryAdapter())
	handler := m.Middleware(countingHandler(&hits))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/health", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, 2, hits)
}
