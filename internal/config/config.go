package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Cache backends.
const (
	CacheMemory   = "memory"
	CacheSQLite   = "sqlite"
	CacheDisabled = "disabled"
)

type AppConfig struct {
	Port     string `envconfig:"PORT" default:"8080" validate:"required,numeric"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	// HTTPTimeout bounds each outbound call; zero means no timeout.
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"0s" validate:"gte=0"`
	UserAgent   string        `envconfig:"USER_AGENT" default:"weather-snapshot/1.0" validate:"required"`

	GeocodingURL        string  `envconfig:"GEOCODING_URL" default:"https://geocoding-api.open-meteo.com/v1/search" validate:"required,url"`
	ForecastURL         string  `envconfig:"FORECAST_URL" default:"https://api.open-meteo.com/v1/forecast" validate:"required,url"`
	AirQualityURL       string  `envconfig:"AIR_QUALITY_URL" default:"https://air-quality-api.open-meteo.com/v1/air-quality" validate:"required,url"`
	ReverseGeocodingURL string  `envconfig:"REVERSE_GEOCODING_URL" default:"https://nominatim.openstreetmap.org/reverse" validate:"required,url"`
	ReverseRateLimit    float64 `envconfig:"REVERSE_RATE_LIMIT" default:"1" validate:"gte=0"`

	// GoogleGeocoderAPIKey enables the Google reverse geocoding fallback.
	GoogleGeocoderAPIKey string `envconfig:"GOOGLE_GEOCODER_API_KEY"`

	CacheBackend  string        `envconfig:"CACHE_BACKEND" default:"memory" validate:"oneof=memory sqlite disabled"`
	CachePath     string        `envconfig:"CACHE_PATH" default:"weather-cache.db" validate:"required_if=CacheBackend sqlite"`
	CacheTTL      time.Duration `envconfig:"CACHE_TTL" default:"15m" validate:"gt=0"`
	CacheCapacity int           `envconfig:"CACHE_CAPACITY" default:"5" validate:"gte=1"`

	SweepInterval time.Duration `envconfig:"SWEEP_INTERVAL" default:"15m" validate:"gte=1m"`

	// WarmLocations are free-text places kept warm by the scheduler,
	// separated by ";" so "Austin, TX" survives intact.
	WarmLocations []string `ignored:"true"`
	WarmRaw       string   `envconfig:"WARM_LOCATIONS"`
}

var validate = validator.New()

// Load reads configuration from .env (if present) and the environment.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg := &AppConfig{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	cfg.WarmLocations = splitLocations(cfg.WarmRaw)

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// SlogLevel maps LogLevel to a slog.Level.
func (c *AppConfig) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func splitLocations(raw string) []string {
	var locs []string
	for _, part := range strings.Split(raw, ";") {
		if part = strings.TrimSpace(part); part != "" {
			locs = append(locs, part)
		}
	}
	return locs
}
