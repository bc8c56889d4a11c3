// Package app composes the process-wide dependencies.
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - database pool
//
// and wires the repository and service containers on top. The persistence
// core is a library boundary: there is no HTTP server here, just the
// resources its callers share.
package app

import (
	"context"
	"fmt"

	"github.com/JaedenTYY/justrsvp/internal/config"
	"github.com/JaedenTYY/justrsvp/internal/database"
	loggerPkg "github.com/JaedenTYY/justrsvp/internal/logger"
	"github.com/JaedenTYY/justrsvp/internal/repository"
	"github.com/JaedenTYY/justrsvp/internal/service"
	"github.com/rs/zerolog"
)

// App is the application container that holds shared resources.
type App struct {
	// Config holds all environment/config values.
	Config *config.Config

	// Logger is the application's main structured logger.
	Logger *zerolog.Logger

	// LoggerService optionally holds the New Relic application instance.
	LoggerService *loggerPkg.LoggerService

	// DB holds the PostgreSQL pool wrapper.
	DB *database.Database

	// Repositories and Services are the wired persistence surface callers
	// use.
	Repositories *repository.Repositories
	Services     *service.Services
}

// New loads config, builds the logger, connects the database pool, ensures
// the schema exists, and wires the repository/service containers.
func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, loggerService, err := loggerPkg.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.New(cfg, log, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Idempotent: brings the schema to the current version on every start.
	if err := database.Migrate(ctx, log, cfg); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(db, repos, log)

	return &App{
		Config:        cfg,
		Logger:        log,
		LoggerService: loggerService,
		DB:            db,
		Repositories:  repos,
		Services:      services,
	}, nil
}

// Shutdown releases the shared resources.
func (a *App) Shutdown(ctx context.Context) error {
	if err := a.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}
