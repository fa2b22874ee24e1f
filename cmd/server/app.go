package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/harperlib/bookshelf-api/internal/config"
	"github.com/harperlib/bookshelf-api/internal/platform/postgres"
	"github.com/harperlib/bookshelf-api/internal/ratelimit"
	"github.com/harperlib/bookshelf-api/internal/service/auth"
	"github.com/harperlib/bookshelf-api/internal/service/books"
	"github.com/harperlib/bookshelf-api/internal/store"
	"github.com/harperlib/bookshelf-api/migrations"
)

// application holds the wired dependencies of the running server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore      store.UserStore
	bookService    *books.Service
	jwtService     auth.JWTService
	passwordHasher *auth.BcryptHasher
	limiterStore   ratelimit.CounterStore
	limiterCloser  func()
}

// newApplication loads every dependency in order: database, migrations,
// stores, services, rate-limit counters.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := setupDatabase(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	if err := migrations.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("database migrations applied")

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	bookStore := postgres.NewBookStore(db)
	bookService := books.NewService(bookStore, store.NewSQLTxManager(db))

	app := &application{
		config:         cfg,
		logger:         logger,
		db:             db,
		userStore:      postgres.NewUserStore(db),
		bookService:    bookService,
		jwtService:     jwtService,
		passwordHasher: auth.NewBcryptHasher(),
	}

	if err := app.setupRateLimiter(ctx); err != nil {
		return nil, err
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// setupRateLimiter picks the counter store: Redis when configured so the
// window is shared across replicas, in-process otherwise.
func (app *application) setupRateLimiter(ctx context.Context) error {
	if url := app.config.RateLimit.RedisURL; url != "" {
		redisStore, err := ratelimit.NewRedisStore(ctx, url)
		if err != nil {
			return fmt.Errorf("failed to connect rate limit store: %w", err)
		}
		app.limiterStore = redisStore
		app.limiterCloser = func() {
			if err := redisStore.Close(); err != nil {
				app.logger.Error("error closing redis connection", "error", err)
			}
		}
		app.logger.Info("rate limiting backed by redis")
		return nil
	}

	memStore := ratelimit.NewMemoryStore()
	app.limiterStore = memStore
	app.limiterCloser = memStore.Close
	app.logger.Info("rate limiting backed by in-process counters")
	return nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.limiterCloser != nil {
		app.limiterCloser()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
