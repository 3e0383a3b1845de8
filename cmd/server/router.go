package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/phrazzld/cohort-tools-api/internal/api"
	apiMiddleware "github.com/phrazzld/cohort-tools-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Trace IDs come first so every later log line carries one.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware)
	r.Use(apiMiddleware.NewMetrics(app.registry).Handler)
	r.Use(apiMiddleware.Recoverer)
	r.Use(apiMiddleware.CORS(app.config.Server.CORSAllowedOrigins))

	r.NotFound(api.NotFoundHandler)
	r.MethodNotAllowed(api.MethodNotAllowedHandler)

	authHandler := api.NewAuthHandler(app.userService, app.jwtService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	healthHandler := api.NewHealthHandler(app.pinger)

	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))

	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if app.limiter != nil {
				r.Use(apiMiddleware.RateLimit(app.limiter, "auth"))
			}
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
		})
		r.With(authMiddleware.Authenticate).Get("/verify", authHandler.Verify)
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/cohorts", api.NewCohortHandler(app.cohortService, app.logger).Routes)
		r.Route("/students", api.NewStudentHandler(app.studentService, app.logger).Routes)

		// Protected routes
		r.With(authMiddleware.Authenticate).
			Get("/users/{id}", api.NewUserHandler(app.userService).GetUser)
	})

	return r
}
