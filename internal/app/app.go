// Package app wires configuration, storage, events and the HTTP router into a runnable
// catalog service.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"catalog/internal/config"
	"catalog/internal/database"
	"catalog/internal/handlers"
	"catalog/internal/middleware"
	"catalog/internal/repositories"
	"catalog/internal/services"
	"catalog/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Queue receiving every product event for the event log.
const eventLogQueue = "catalog.product-events.log"

// App is a configured catalog service.
type App struct {
	cfg     config.Config
	fiber   *fiber.App
	service *services.ProductService
	closers []func() error
}

// SetupLogger configures the global zerolog logger from cfg.
func SetupLogger(cfg config.Config) {
	zerolog.SetGlobalLevel(cfg.LogLevel)
	if cfg.IsDevelopment() {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	zerolog.DefaultContextLogger = &log.Logger
}

// New builds the repository selected by cfg, the product service and the router. When a
// RabbitMQ URL is configured, product events are published and logged; an unreachable
// broker only disables events.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	a := &App{cfg: cfg}

	repo, err := a.buildRepository(ctx)
	if err != nil {
		return nil, err
	}

	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Warn().Err(err).Msg("RabbitMQ unavailable, product events disabled")
		} else {
			a.closers = append(a.closers, mqClient.Close)
			publisher = mqClient
			if err := mqClient.Consume(eventLogQueue, "product.#", logProductEvent); err != nil {
				log.Warn().Err(err).Msg("failed to start product event consumer")
			}
		}
	}

	a.service = services.NewProductService(repo, publisher)

	if cfg.SeedData {
		if err := Seed(ctx, a.service); err != nil {
			a.close()
			return nil, fmt.Errorf("failed to seed products: %w", err)
		}
	}

	a.fiber = NewRouter(a.service)
	return a, nil
}

// NewRouter builds the fiber app serving the product API under /api.
func NewRouter(service *services.ProductService) *fiber.App {
	router := fiber.New(fiber.Config{
		AppName:      "catalog",
		ErrorHandler: handlers.ErrorHandler,
	})

	router.Use(middleware.RequestLogger(log.Logger))
	router.Use(recover.New())

	api := router.Group("/api")
	handlers.NewProductHandler(service).RegisterRoutes(api)

	router.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	return router
}

// Router exposes the HTTP handler, mainly for tests.
func (a *App) Router() *fiber.App {
	return a.fiber
}

// Listen serves HTTP on the configured port until Shutdown is called.
func (a *App) Listen() error {
	log.Info().Str("addr", a.cfg.AppPort).Msg("starting server")
	return a.fiber.Listen(a.cfg.AppPort)
}

// Shutdown stops the HTTP server and releases the store and the broker connection.
func (a *App) Shutdown() error {
	err := a.fiber.Shutdown()
	return errors.Join(err, a.close())
}

func (a *App) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) buildRepository(ctx context.Context) (repositories.ProductRepository, error) {
	switch a.cfg.Database.Driver {
	case config.DriverMemory:
		log.Info().Msg("product repository configured in memory")
		return repositories.NewMemoryProductRepository(), nil
	case config.DriverPostgres, config.DriverSQLite:
		db, err := database.Open(ctx, a.cfg.Database.Driver, a.cfg.Database.DSN)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() error { return database.Close(db) })
		log.Info().Str("driver", a.cfg.Database.Driver).Msg("product repository configured")
		return repositories.NewGORMProductRepository(db), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", a.cfg.Database.Driver)
}
