package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/juicebox-api/internal/config"
	"github.com/phrazzld/juicebox-api/internal/platform/postgres"
	"github.com/phrazzld/juicebox-api/internal/service"
	"github.com/phrazzld/juicebox-api/internal/service/auth"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	jwtService  auth.JWTService
	userService service.UserService
	postService service.PostService
}

// newApplication wires stores and services on top of an open database.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	instrumented := postgres.NewInstrumentedDB(db)
	tagStore := postgres.NewPostgresTagStore(instrumented, logger)
	postStore := postgres.NewPostgresPostStore(instrumented, logger,
		postgres.WithTagStore(tagStore),
		postgres.WithAssemblyConcurrency(cfg.Database.AssemblyConcurrency))
	userStore := postgres.NewPostgresUserStore(instrumented, logger, postStore)

	app.postService, err = service.NewPostService(instrumented, postStore, tagStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create post service: %w", err)
	}

	password := auth.NewBcrypt(cfg.Auth.BcryptCost)
	app.userService, err = service.NewUserService(instrumented, userStore, password, password, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down and releases resources.
func (app *application) Run(ctx context.Context) error {
	router := newRouter(app.logger, app.userService, app.postService, app.jwtService)

	err := app.startHTTPServer(ctx, router)
	app.cleanup()
	if err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}
	app.logger.Info("Application shutdown completed")
}
