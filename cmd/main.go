package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hvacsim/internal/config"
	"hvacsim/internal/handlers"
	"hvacsim/internal/logger"
	"hvacsim/internal/repository"
	"hvacsim/internal/server"
	"hvacsim/internal/service"
	"hvacsim/internal/sim"

	_ "hvacsim/docs"
)

const configDir = "configs"

// @title           HVAC Simulation API
// @version         1.0
// @description     Closed-loop HVAC simulation: fuzzy controller, fan actuator and thermal plant, with batch runs and a live incremental loop.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	// load configs/config.yml first: the logger level comes from it
	cfg, err := config.Load(configDir)
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(cfg.LogLevel)

	// open DB
	db, err := openDB(cfg.DBPath)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	eng, err := sim.NewEngine(cfg.Engine)
	if err != nil {
		log.Fatalw("invalid engine parameters", "err", err)
	}
	repos := repository.NewRepository(db)
	services := service.NewService(repos, eng, service.AuthOptions{
		SigningKey: cfg.SigningKey,
		TokenTTL:   cfg.TokenTTL,
	})
	apiHandler := handlers.NewHandler(services, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// start the live loop ticker
	go services.Simulator.Run(ctx, cfg.SimTick)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)
	log.Infow("hvacsim started", "port", cfg.Port, "tick", cfg.SimTick)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

// openDB initializes the SQLite database at the configured path.
func openDB(dbPath string) (*sql.DB, error) {
	return repository.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
// ErrServerClosed is the normal result of a graceful shutdown, not a failure.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop the live loop ticker
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
