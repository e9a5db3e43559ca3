package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/taskboard-api/internal/api"
	apimw "github.com/phrazzld/taskboard-api/internal/api/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// routes builds the HTTP handler with all middleware and endpoints.
func (app *application) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(apimw.Trace(app.logger))
	r.Use(chimw.Recoverer)
	r.Use(app.metrics.Instrument)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.Server.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(chimw.StripSlashes)
	r.Use(chimw.Timeout(app.config.Server.RequestTimeout))

	authHandler := api.NewAuthHandler(app.authService, app.logger)
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.logger)
	authMiddleware := apimw.NewAuthMiddleware(app.authService)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/signup", authHandler.Register)
		r.Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Get("/me", authHandler.Me)
			r.Post("/logout", authHandler.Logout)
		})
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Get("/my-tasks", taskHandler.MyTasks)
		r.Get("/{id}", taskHandler.GetTask)
		r.Patch("/{id}/status", taskHandler.UpdateStatus)

		r.Group(func(r chi.Router) {
			r.Use(apimw.RequireAdmin)
			r.Post("/", taskHandler.CreateTask)
			r.Get("/", taskHandler.ListTasks)
			r.Patch("/{id}", taskHandler.UpdateTask)
			r.Delete("/{id}", taskHandler.DeleteTask)
		})
	})

	r.Route("/user", func(r chi.Router) {
		r.Get("/{id}", userHandler.GetUser)
		r.With(authMiddleware.Authenticate, apimw.RequireAdmin).Get("/", userHandler.ListUsers)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))

	return r
}
