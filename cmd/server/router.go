package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/harperlib/bookshelf-api/internal/api"
	apiMiddleware "github.com/harperlib/bookshelf-api/internal/api/middleware"
)

// setupRouter creates and configures the application router. The middleware
// chain is declared explicitly so the ordering — CORS, rate limit, trace,
// auth, injection guard, schema validation, handler — is a visible contract
// rather than an artifact of registration order.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.SecurityHeaders)
	r.Use(apiMiddleware.CORS(app.config.CORS.AllowedOrigins))

	limiter := apiMiddleware.NewRateLimiter(
		app.limiterStore,
		time.Duration(app.config.RateLimit.WindowMinutes)*time.Minute,
		app.config.RateLimit.MaxRequests,
	)
	r.Use(limiter.Limit)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordHasher,
		app.passwordHasher,
	)
	bookHandler := api.NewBookHandler(app.bookService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected book catalog
		r.Route("/books", func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Use(apiMiddleware.GuardInjection)

			r.Get("/", bookHandler.List)
			r.Get("/{id}", bookHandler.GetByID)
			r.Delete("/{id}", bookHandler.SoftDelete)
			r.Post("/{id}/restore", bookHandler.Restore)

			// Write routes additionally pass the schema validator.
			r.Group(func(r chi.Router) {
				r.Use(apiMiddleware.ValidateBook)
				r.Post("/", bookHandler.Create)
				r.Put("/{id}", bookHandler.Update)
			})
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
