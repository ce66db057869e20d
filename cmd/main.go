package main

//
//  @title           clientpulse API
//  @version         1.0
//  @description     Per-client trading account aggregation service.
//  @termsOfService  https://github.com/fxlens/clientpulse
//  @contact.name    API Support
//  @contact.url     https://github.com/fxlens/clientpulse
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        clients
//  @tag.description Paginated client summaries and per-account drill-down
//
//  @tag.name        source
//  @tag.description Source-table writes relayed for the venue feeds
//
//  @tag.name        admin
//  @tag.description Backfill, reconciliation and freshness status
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fxlens/clientpulse/config"
	_ "github.com/fxlens/clientpulse/docs" // swagger docs
	"github.com/fxlens/clientpulse/internal/app"
	"github.com/fxlens/clientpulse/internal/logger"
	"github.com/fxlens/clientpulse/internal/refresh"
	"github.com/fxlens/clientpulse/internal/storage"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// main is the entry point of the clientpulse application.
//
// Modes (selected via --mode flag):
//   - api:       Starts the REST API exposing client summaries and source writes.
//   - init:      Rebuilds all derived client state from the source tables.
//   - reconcile: Compares source and derived client sets, optionally repairing drift.
//
// Flags:
//   - --mode:     Execution mode ("api", "init" or "reconcile"). Default: "api".
//   - --port:     Port for API mode. Defaults to value from config (SERVER_PORT).
//   - --parallel: Worker count for init mode. Defaults to BACKFILL_PARALLELISM.
//   - --force:    Truncate the derived tables before init. Default: false.
//   - --fix:      Repair drift in reconcile mode. Default: false.
func main() {
	ctx := context.Background()

	config.LoadConfig()
	logger.Init()

	mode := flag.String("mode", "api", "Mode: api, init or reconcile")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	parallel := flag.Int("parallel", config.AppConfig.Refresh.BackfillParallelism, "Workers for init mode")
	force := flag.Bool("force", false, "Truncate derived tables before init")
	fix := flag.Bool("fix", false, "Repair drift in reconcile mode")
	flag.Parse()

	switch *mode {
	case "api":
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	case "init":
		logger.L().Info().Msg("running bulk initialization")

		db, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = db.Close() }()

		repo := storage.NewRepository(db)
		refresher := refresh.NewRefresher(repo, config.AppConfig.Refresh.DefaultVenue)
		initializer := refresh.NewInitializer(repo, refresher)

		stats, err := initializer.InitializeAll(ctx, *parallel, *force)
		if err != nil {
			logger.L().Fatal().Err(err).
				Int("clients_processed", stats.ClientsProcessed).
				Msg("initialization failed")
		}
		logger.L().Info().
			Int("clients", stats.ClientsProcessed).
			Int("accounts", stats.AccountsWritten).
			Dur("elapsed", stats.Duration).
			Msg("initialization completed successfully")

	case "reconcile":
		logger.L().Info().Bool("fix", *fix).Msg("running reconciliation")

		db, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = db.Close() }()

		repo := storage.NewRepository(db)
		refresher := refresh.NewRefresher(repo, config.AppConfig.Refresh.DefaultVenue)
		reconciler := refresh.NewReconciler(repo, refresher)

		findings, err := reconciler.CompareAndRepair(ctx, *fix)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("reconciliation failed")
		}
		for _, f := range findings {
			logger.L().Info().
				Str("status", f.Status).
				Int64("client_id", f.ClientID).
				Bool("fixed", f.Fixed).
				Msg(f.Description)
		}

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
