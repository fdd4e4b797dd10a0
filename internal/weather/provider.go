package weather

import (
	"context"
)

// Geocoder resolves a structured query to coordinates and a display label.
// It returns *NotFoundError when the upstream has no candidates and
// *UpstreamError when the request itself fails.
type Geocoder interface {
	Resolve(ctx context.Context, q LocationQuery) (ResolvedLocation, error)
}

// ReverseGeocoder is best-effort: any failure yields ok == false.
type ReverseGeocoder interface {
	Reverse(ctx context.Context, lat, lon float64) (label string, ok bool)
}

// ForecastFetcher retrieves hourly, daily and current forecast data.
type ForecastFetcher interface {
	FetchForecast(ctx context.Context, lat, lon float64) (Forecast, error)
}

// AirQualityFetcher retrieves hourly air-quality samples keyed by the
// provider's timestamp strings for the given timezone.
type AirQualityFetcher interface {
	FetchAirQuality(ctx context.Context, lat, lon float64, timezone string) (map[string]AirQualitySample, error)
}

// Cache is the snapshot cache the Service reads through. Implementations
// degrade to no-ops when their storage is unavailable.
type Cache interface {
	Get(ctx context.Context, key string) (WeatherSnapshot, bool)
	Put(ctx context.Context, key string, snapshot WeatherSnapshot)
	Purge(ctx context.Context) int
	Clear(ctx context.Context)
}
