package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/juicebox-api/internal/api"
	apiMiddleware "github.com/phrazzld/juicebox-api/internal/api/middleware"
	"github.com/phrazzld/juicebox-api/internal/service"
	"github.com/phrazzld/juicebox-api/internal/service/auth"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newRouter creates the application router with all routes and middleware.
func newRouter(
	logger *slog.Logger,
	users service.UserService,
	posts service.PostService,
	jwtService auth.JWTService,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace(logger))
	r.Use(apiMiddleware.Metrics)

	userHandler := api.NewUserHandler(users, jwtService)
	postHandler := api.NewPostHandler(posts)
	authMiddleware := apiMiddleware.NewAuthMiddleware(jwtService)

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.OptionalAuth)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.ListUsers)
			r.Post("/register", userHandler.Register)
			r.Post("/login", userHandler.Login)
			r.Get("/{userID}", userHandler.GetUser)
			r.With(authMiddleware.RequireAuth).Patch("/{userID}", userHandler.UpdateUser)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", postHandler.ListPosts)
			r.With(authMiddleware.RequireAuth).Post("/", postHandler.CreatePost)
			r.Get("/{postID}", postHandler.GetPost)
			r.With(authMiddleware.RequireAuth).Patch("/{postID}", postHandler.UpdatePost)
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", postHandler.ListTags)
			r.Get("/{tagName}/posts", postHandler.ListPostsByTag)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("Failed to write health check response", "error", err)
		}
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
