package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	httpapi "github.com/i474232898/weather-snapshot/internal/api/http"
	"github.com/i474232898/weather-snapshot/internal/config"
	"github.com/i474232898/weather-snapshot/internal/scheduler"
	"github.com/i474232898/weather-snapshot/internal/store"
	"github.com/i474232898/weather-snapshot/internal/weather"
	"github.com/i474232898/weather-snapshot/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(log)

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}
	endpoint := func(url string) providers.Endpoint {
		return providers.Endpoint{URL: url, HTTPClient: httpClient, UserAgent: cfg.UserAgent}
	}

	cache, closeCache, err := openCache(cfg, log)
	if err != nil {
		log.Error("failed to open cache", "error", err)
		os.Exit(1)
	}
	defer closeCache()

	reverse := providers.ReverseChain{
		providers.NewNominatimReverseGeocoder(endpoint(cfg.ReverseGeocodingURL), cfg.ReverseRateLimit, log),
	}
	if cfg.GoogleGeocoderAPIKey != "" {
		reverse = append(reverse, providers.NewGoogleReverseGeocoder(cfg.GoogleGeocoderAPIKey, log))
	}

	// Core service orchestrating geocoding, fetch, merge and cache.
	service := weather.NewService(cache, weather.Sources{
		Geocoder:   providers.NewOpenMeteoGeocoder(endpoint(cfg.GeocodingURL)),
		Reverse:    reverse,
		Forecast:   providers.NewOpenMeteoForecaster(endpoint(cfg.ForecastURL)),
		AirQuality: providers.NewOpenMeteoAirQuality(endpoint(cfg.AirQualityURL)),
	}, log)

	// Scheduler that sweeps the cache and keeps configured places warm.
	sched := scheduler.New(cfg.WarmLocations, cfg.SweepInterval, service, log)
	if err := sched.Start(); err != nil {
		log.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-snapshot",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response; the message is shown verbatim.
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
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-snapshot",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("fiber server stopped", "error", err)
		}
	}()
	log.Info("listening", "port", cfg.Port, "cache", cfg.CacheBackend)

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

// openCache builds the snapshot cache for the configured backend. The
// disabled backend yields a cache whose operations are no-ops.
func openCache(cfg *config.AppConfig, log *slog.Logger) (*store.SnapshotCache, func(), error) {
	opts := []store.Option{
		store.WithTTL(cfg.CacheTTL),
		store.WithCapacity(cfg.CacheCapacity),
		store.WithLogger(log),
	}

	switch cfg.CacheBackend {
	case config.CacheSQLite:
		db, err := store.OpenSQLite(cfg.CachePath)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := db.Close(); err != nil {
				log.Warn("closing cache database", "error", err)
			}
		}
		return store.NewSnapshotCache(db, opts...), closeFn, nil
	case config.CacheDisabled:
		return store.NewSnapshotCache(nil, opts...), func() {}, nil
	default:
		return store.NewSnapshotCache(store.NewMemoryStorage(), opts...), func() {}, nil
	}
}
