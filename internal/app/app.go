package app

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/fxlens/clientpulse/config"
	"github.com/fxlens/clientpulse/internal/api"
	"github.com/fxlens/clientpulse/internal/refresh"
	"github.com/fxlens/clientpulse/internal/service"
	"github.com/fxlens/clientpulse/internal/storage"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL using InitPostgres().
//   - Initializes the repository, refresher, dispatcher and maintenance components.
//   - Creates the HTTP handler layer and configures the Gin router.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources (e.g., DB connection).
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	// indirection for unit testing
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	repo := storage.NewRepository(db)

	refresher := refresh.NewRefresher(repo, cfg.Refresh.DefaultVenue)
	dispatcher := refresh.NewDispatcher(repo, refresher)
	initializer := refresh.NewInitializer(repo, refresher)
	reconciler := refresh.NewReconciler(repo, refresher)

	svc := service.NewClientService(repo)

	handler := api.NewHandler(svc, dispatcher)
	admin := api.NewAdminHandler(svc, initializer, reconciler, cfg.Refresh.BackfillParallelism)

	router := api.NewRouter(handler, admin)

	healthHandler := api.NewHealthHandler(db.Ping)
	healthHandler.Register(router)

	cleanup := func() {
		_ = db.Close()
	}

	return router, cleanup, nil
}
