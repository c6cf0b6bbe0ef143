package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"redis-shopping-api/internal/handlers"
	"redis-shopping-api/internal/metrics"
	"redis-shopping-api/internal/middleware"
	"redis-shopping-api/internal/ratelimit"
	"redis-shopping-api/internal/session"
)

func SetupRouter(r *chi.Mux, baseLogger *zap.Logger, api *handlers.API, limiter *ratelimit.Limiter, sessions *session.Manager) {

	r.Use(metrics.Middleware)

	// base middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)

	r.Use(middleware.LoggingContext(baseLogger))
	r.Use(middleware.Recoverer())               // panic recovery
	r.Use(middleware.Timeout(15 * time.Second)) // must outlast the simulated origin latency

	// routes
	r.Get("/", api.Root)

	// public reads behind the rate-limit gate
	r.Group(func(r chi.Router) {
		r.Use(ratelimit.Middleware(limiter))
		r.Get("/product/{pid}", api.Product)
		r.Get("/homepage", api.Homepage)
	})

	r.Post("/login", api.Login)

	// session-protected routes
	r.Group(func(r chi.Router) {
		r.Use(session.RequireAuth(sessions))
		r.Get("/me", api.Me)
		r.Post("/cart/add", api.CartAdd)
		r.Get("/cart", api.CartGet)
	})

	// health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Handle("/metrics", metrics.Handler())
}
