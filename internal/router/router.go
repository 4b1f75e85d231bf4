package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/itchan-dev/tgchan/internal/setup"
	mw "github.com/itchan-dev/tgchan/shared/middleware"
	"github.com/itchan-dev/tgchan/shared/middleware/metrics"
)

// New creates the chi router with all routes.
func New(deps *setup.Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(metrics.Middleware)

	origins := deps.Config.Public.Server.AllowedOrigins
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// JSON API embedded in the Telegram webview
	r.Use(mw.SecurityHeaders(deps.Config.Public.Server.SecureCookies, origins))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(authMw.OptionalAuth())
		r.Use(mw.RateLimit(deps.RateLimiter, mw.GetSessionOrIP))

		r.Post("/session", h.CreateSession)
		r.With(authMw.NeedAuth()).Get("/session", h.GetSession)

		r.Get("/boards", h.GetBoards)
		r.Get("/boards/{board}", h.GetThreads)
		r.Get("/boards/{board}/{thread}", h.GetThread)
	})

	return r
}
