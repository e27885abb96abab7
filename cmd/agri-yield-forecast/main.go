package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpapi "github.com/agroyield/agri-yield-forecast/internal/api/http"
	"github.com/agroyield/agri-yield-forecast/internal/config"
	"github.com/agroyield/agri-yield-forecast/internal/forecast"
	"github.com/agroyield/agri-yield-forecast/internal/model"
	"github.com/agroyield/agri-yield-forecast/internal/observability"
	"github.com/agroyield/agri-yield-forecast/internal/scheduler"
	"github.com/agroyield/agri-yield-forecast/internal/soil"
	"github.com/agroyield/agri-yield-forecast/internal/store"
	"github.com/agroyield/agri-yield-forecast/internal/weather"
	"github.com/agroyield/agri-yield-forecast/internal/weather/providers"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	metrics := observability.NewMetrics()

	// Load the trained model. The service still starts without one so the
	// weather and soil endpoints remain usable; predictions return 503.
	var mdl forecast.Model
	handle, err := model.Load()
	if err != nil {
		log.Warn("no usable forecasting model; predictions will be unavailable", "error", err)
	} else {
		mdl = handle
		metrics.ModelLoaded.Set(1)
		log.Info("model loaded", "type", handle.Info().Type)
	}

	// Static soil reference table.
	soilTable, err := soil.Load()
	if err != nil {
		log.Error("failed to load soil reference data", "error", err)
		os.Exit(1)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Live providers, in fallback order. A provider with no key fails fast
	// on Fetch, which degrades to the simulated source.
	provs := []weather.Provider{
		providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey, cfg.WeatherCountry),
		providers.NewWeatherAPIProvider(httpClient, cfg.WeatherAPIKey, cfg.WeatherCountry),
	}

	resolver := weather.NewResolver(provs, nil, log, metrics)

	// Observation history with configured retention, fed by the refresher.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	sched := scheduler.New(cfg.Regions, cfg.RefreshInterval, cfg.PreferLive, resolver, memStore, log)
	if err := sched.Start(); err != nil {
		log.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	svc := forecast.NewService(mdl, log, metrics)

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "agri-yield-forecast",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Health and readiness
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":       "healthy",
			"service":      "agri-yield-forecast",
			"model_loaded": svc.Loaded(),
		})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API routes.
	httpapi.RegisterRoutes(app, httpapi.Deps{
		Forecast:   svc,
		Resolver:   resolver,
		Store:      memStore,
		Soil:       soilTable,
		Model:      handle,
		PreferLive: cfg.PreferLive,
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("fiber server stopped", "error", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("error during shutdown", "error", err)
	}
}
