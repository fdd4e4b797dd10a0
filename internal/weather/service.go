package weather

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Sources bundles the upstream collaborators a Service reads from.
// Reverse and AirQuality are optional.
type Sources struct {
	Geocoder   Geocoder
	Reverse    ReverseGeocoder
	Forecast   ForecastFetcher
	AirQuality AirQualityFetcher
}

// Service resolves places, fetches and merges weather data, and reads through
// the snapshot cache. Each request runs its upstream calls sequentially.
type Service struct {
	sources Sources
	cache   Cache
	logger  *slog.Logger
	now     func() time.Time
}

// NewService creates a new Service. A nil cache disables caching.
func NewService(cache Cache, sources Sources, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		sources: sources,
		cache:   cache,
		logger:  logger,
		now:     time.Now,
	}
}

// SnapshotForQuery returns the weather snapshot for free-text input, serving
// it from the cache when a live entry exists for the same normalized text.
func (s *Service) SnapshotForQuery(ctx context.Context, text string) (WeatherSnapshot, error) {
	key := QueryKey(text)
	if snap, ok := s.cached(ctx, key); ok {
		return snap, nil
	}

	_, loc, err := s.Resolve(ctx, text)
	if err != nil {
		return WeatherSnapshot{}, err
	}

	snap, err := s.fetchSnapshot(ctx, loc.Lat, loc.Lon, loc.Label)
	if err != nil {
		return WeatherSnapshot{}, err
	}

	s.store(ctx, key, snap)
	return snap, nil
}

// SnapshotForCoordinates returns the weather snapshot for a coordinate pair.
// The label comes from reverse geocoding, or the formatted coordinates when
// no label is available.
func (s *Service) SnapshotForCoordinates(ctx context.Context, lat, lon float64) (WeatherSnapshot, error) {
	key := CoordinateKey(lat, lon)
	if snap, ok := s.cached(ctx, key); ok {
		return snap, nil
	}

	label, ok := s.ReverseLabel(ctx, lat, lon)
	if !ok {
		label = fmt.Sprintf("%.4f, %.4f", lat, lon)
	}

	snap, err := s.fetchSnapshot(ctx, lat, lon, label)
	if err != nil {
		return WeatherSnapshot{}, err
	}

	s.store(ctx, key, snap)
	return snap, nil
}

// Resolve parses free text and geocodes it.
func (s *Service) Resolve(ctx context.Context, text string) (LocationQuery, ResolvedLocation, error) {
	q := ParseQuery(text)
	if s.sources.Geocoder == nil {
		return q, ResolvedLocation{}, fmt.Errorf("no geocoder configured")
	}

	loc, err := s.sources.Geocoder.Resolve(ctx, q)
	if err != nil {
		return q, ResolvedLocation{}, err
	}
	return q, loc, nil
}

// ReverseLabel looks up a display label for coordinates. It never fails;
// ok is false when no label could be produced.
func (s *Service) ReverseLabel(ctx context.Context, lat, lon float64) (string, bool) {
	if s.sources.Reverse == nil {
		return "", false
	}
	return s.sources.Reverse.Reverse(ctx, lat, lon)
}

// PurgeCache drops expired cache entries and reports how many were removed.
func (s *Service) PurgeCache(ctx context.Context) int {
	if s.cache == nil {
		return 0
	}
	return s.cache.Purge(ctx)
}

// ClearCache removes every cache entry.
func (s *Service) ClearCache(ctx context.Context) {
	if s.cache != nil {
		s.cache.Clear(ctx)
	}
}

// fetchSnapshot runs forecast, then air quality, then the merge. Only a
// forecast failure fails the snapshot.
func (s *Service) fetchSnapshot(ctx context.Context, lat, lon float64, label string) (WeatherSnapshot, error) {
	if s.sources.Forecast == nil {
		return WeatherSnapshot{}, fmt.Errorf("no forecast fetcher configured")
	}

	fc, err := s.sources.Forecast.FetchForecast(ctx, lat, lon)
	if err != nil {
		return WeatherSnapshot{}, err
	}

	samples, _ := s.airQuality(ctx, lat, lon, fc.Timezone)

	return WeatherSnapshot{
		Lat:       lat,
		Lon:       lon,
		Label:     label,
		Timezone:  fc.Timezone,
		FetchedAt: s.now().UTC(),
		Current:   fc.Current,
		Hourly:    MergeAirQuality(NormalizeHourly(fc.Hourly), samples),
		Daily:     NormalizeDaily(fc.Daily),
	}, nil
}

// airQuality fetches samples for the forecast's timezone. Failures are logged
// and reported as ok == false with a nil map.
func (s *Service) airQuality(ctx context.Context, lat, lon float64, timezone string) (map[string]AirQualitySample, bool) {
	if s.sources.AirQuality == nil {
		return nil, false
	}
	if timezone == "" {
		timezone = "auto"
	}

	samples, err := s.sources.AirQuality.FetchAirQuality(ctx, lat, lon, timezone)
	if err != nil {
		s.logger.WarnContext(ctx, "air quality unavailable; continuing without it",
			"lat", lat,
			"lon", lon,
			"error", err,
		)
		return nil, false
	}
	return samples, true
}

func (s *Service) cached(ctx context.Context, key string) (WeatherSnapshot, bool) {
	if s.cache == nil {
		return WeatherSnapshot{}, false
	}
	snap, ok := s.cache.Get(ctx, key)
	if ok {
		s.logger.DebugContext(ctx, "cache hit", "key", key)
	}
	return snap, ok
}

func (s *Service) store(ctx context.Context, key string, snap WeatherSnapshot) {
	if s.cache != nil {
		s.cache.Put(ctx, key, snap)
	}
}
