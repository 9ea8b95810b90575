// Package server assembles the Fiber application: middleware, routes and error handling.
package server

import (
	"io"
	"strings"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/localnerve/dronedb/internal/config"
	"github.com/localnerve/dronedb/internal/events"
	"github.com/localnerve/dronedb/internal/handlers"
	"github.com/localnerve/dronedb/internal/logging"
	"github.com/localnerve/dronedb/internal/middleware"
	"github.com/localnerve/dronedb/internal/services"
)

// Options are the dependencies of the application
type Options struct {
	Config *config.Config
	Store  services.DroneStore
	Events events.Publisher
	Log    logging.Logger

	// AccessLog receives one line per request; nil disables access logging
	AccessLog io.Writer
	// Prometheus serves HTTP metrics at /metrics when set
	Prometheus *fiberprometheus.FiberPrometheus
}

// New builds the application with every route registered
func New(opts Options) *fiber.App {
	cfg := opts.Config
	if opts.Events == nil {
		opts.Events = events.NoopPublisher{}
	}

	app := fiber.New(fiber.Config{
		AppName:               "dronedb",
		ErrorHandler:          handlers.ErrorHandler(cfg.IsProduction(), opts.Log),
		DisableStartupMessage: true,
	})

	// Global middleware
	app.Use(recover.New())
	if opts.AccessLog != nil {
		app.Use(logger.New(logger.Config{Output: opts.AccessLog}))
	}
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, X-Api-Version",
	}))

	// Prometheus metrics
	if opts.Prometheus != nil {
		opts.Prometheus.RegisterAt(app, "/metrics")
		app.Use(opts.Prometheus.Middleware)
	}

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	health := &handlers.HealthHandler{Config: cfg, Store: opts.Store, Log: opts.Log}
	app.Get("/health", health.Live)
	app.Get("/health/ready", health.Ready)

	drones := &handlers.DroneHandler{Store: opts.Store, Events: opts.Events, Log: opts.Log}

	// API routes under the configured base path. The version check is bound to
	// each route so unmatched paths still reach the 404 handler.
	api := app.Group(strings.TrimSuffix(cfg.APIBasePath, "/"))
	version := middleware.VersionMiddleware()

	api.Post("/drones", version, drones.CreateDrone)
	api.Get("/drones", version, drones.ListDrones)
	// registered before /:id so "stats" is not taken for an identifier
	api.Get("/drones/stats/summary", version, drones.GetStats)
	api.Get("/drones/:id", version, drones.GetDrone)
	api.Put("/drones/:id", version, drones.UpdateDrone)
	api.Delete("/drones/:id", version, drones.DeleteDrone)

	// 404 handler
	app.Use(handlers.RouteNotFound)

	return app
}
