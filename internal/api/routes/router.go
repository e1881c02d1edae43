package routes

import (
	"net/http"

	"github.com/code4imabari/kyukyu-annai/internal/api/handlers"
	"github.com/code4imabari/kyukyu-annai/internal/api/middleware"
	"github.com/code4imabari/kyukyu-annai/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	guideHandler *handlers.GuideHandler
	pageHandler  *handlers.PageHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	guideHandler *handlers.GuideHandler,
	pageHandler *handlers.PageHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		guideHandler:    guideHandler,
		pageHandler:     pageHandler,
		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Schedule endpoints
	r.mux.HandleFunc("GET /api/schedule/dates", r.guideHandler.GetDates)
	r.mux.HandleFunc("GET /api/schedule/days/{date}", r.guideHandler.GetDay)
	r.mux.HandleFunc("GET /api/schedule/days/{date}/audio", r.guideHandler.GetAudio)

	// Guide page
	r.mux.HandleFunc("GET /", r.pageHandler.ServeIndex)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
