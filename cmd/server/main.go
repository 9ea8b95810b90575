package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/localnerve/dronedb/internal/config"
	"github.com/localnerve/dronedb/internal/events"
	"github.com/localnerve/dronedb/internal/logging"
	"github.com/localnerve/dronedb/internal/server"
	"github.com/localnerve/dronedb/internal/services"

	_ "github.com/localnerve/dronedb/docs/api" // Swagger docs
)

// @title DroneDB API
// @version 1.0.0
// @description Drone model catalog service with multi-database support
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/dronedb
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /
// @schemes http https

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logging.NewLogger("info", "json").Fatalf("Failed to load configuration: %v", err)
	}

	log := logging.NewLogger(cfg.LogLevel, cfg.LogFormat)

	// Open the record store
	store, err := services.NewStore(cfg, log)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.DBType, err)
	}

	// Connect the change event publisher
	publisher, err := events.NewPublisher(cfg, log)
	if err != nil {
		_ = store.Close()
		log.Fatalf("Failed to connect event publisher: %v", err)
	}

	app := server.New(server.Options{
		Config:     cfg,
		Store:      store,
		Events:     publisher,
		Log:        log,
		AccessLog:  os.Stdout,
		Prometheus: fiberprometheus.New("dronedb"),
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Infof("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	log.WithFields(logging.Fields{
		"port":     cfg.Port,
		"env":      cfg.AppEnv,
		"basePath": cfg.APIBasePath,
		"store":    cfg.DBType,
	}).Infof("Starting server on port %s", cfg.Port)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Errorf("Failed to start server: %v", err)
	}

	publisher.Close()
	if err := store.Close(); err != nil {
		log.WithError(err).Errorf("Failed to close store")
	}

	log.Infof("Server stopped")
}
