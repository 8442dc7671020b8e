package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"stream-api/internal/config"
	"stream-api/internal/handler"
	"stream-api/internal/middleware"
	"stream-api/internal/model"
)

type Handlers struct {
	Auth  *handler.AuthHandler
	Movie *handler.MovieHandler
	User  *handler.UserHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, handlers Handlers, metrics *middleware.Metrics) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM, cfg.BaseURL+"/users/login")

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(metrics.Handler)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Exporter())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(model.Failure(http.StatusNotFound, "No resource "+r.URL.Path, nil))
	})

	r.Route(cfg.BaseURL, func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		// Login is guarded by the Basic mechanism; the policy still applies,
		// so a Basic-authenticated principal without ROLE_admin is refused.
		api.With(authMiddleware.BasicAuth, authMiddleware.Authorize).
			Post("/users/login", handlers.Auth.Login)

		api.Group(func(protected chi.Router) {
			protected.Use(authMiddleware.BearerAuth, authMiddleware.Authorize)

			protected.Get("/movies", handlers.Movie.List)
			protected.Post("/movies", handlers.Movie.Create)
			protected.Get("/movies/{movieId}", handlers.Movie.Get)
			protected.Patch("/movies/{movieId}", handlers.Movie.Update)
			protected.Delete("/movies/{movieId}", handlers.Movie.Delete)

			protected.Get("/users", handlers.User.List)
			protected.Post("/users", handlers.User.Create)
			protected.Get("/users/{userId}", handlers.User.Get)
			protected.Put("/users/{userId}", handlers.User.Update)
			protected.Delete("/users/{userId}", handlers.User.Delete)
		})
	})

	return r
}
