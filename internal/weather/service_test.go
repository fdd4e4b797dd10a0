package weather

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGeocoder struct {
	loc   ResolvedLocation
	err   error
	calls int
	last  LocationQuery
}

func (f *fakeGeocoder) Resolve(_ context.Context, q LocationQuery) (ResolvedLocation, error) {
	f.calls++
	f.last = q
	return f.loc, f.err
}

type fakeReverse struct {
	label string
	ok    bool
}

func (f fakeReverse) Reverse(context.Context, float64, float64) (string, bool) {
	return f.label, f.ok
}

type fakeForecast struct {
	fc    Forecast
	err   error
	calls int
}

func (f *fakeForecast) FetchForecast(context.Context, float64, float64) (Forecast, error) {
	f.calls++
	return f.fc, f.err
}

type fakeAirQuality struct {
	samples  map[string]AirQualitySample
	err      error
	timezone string
}

func (f *fakeAirQuality) FetchAirQuality(_ context.Context, _, _ float64, timezone string) (map[string]AirQualitySample, error) {
	f.timezone = timezone
	return f.samples, f.err
}

// mapCache is an unbounded in-memory Cache for service tests.
type mapCache struct {
	entries map[string]WeatherSnapshot
	cleared bool
}

func newMapCache() *mapCache { return &mapCache{entries: map[string]WeatherSnapshot{}} }

func (c *mapCache) Get(_ context.Context, key string) (WeatherSnapshot, bool) {
	s, ok := c.entries[key]
	return s, ok
}
func (c *mapCache) Put(_ context.Context, key string, s WeatherSnapshot) { c.entries[key] = s }
func (c *mapCache) Purge(context.Context) int                            { return 3 }
func (c *mapCache) Clear(context.Context) {
	c.cleared = true
	c.entries = map[string]WeatherSnapshot{}
}

func sampleForecast() Forecast {
	return Forecast{
		Timezone: "America/Chicago",
		Current:  &CurrentConditions{Time: "2024-05-01T01:00", Temperature: ptr(20.0)},
		Hourly: []HourlyPoint{
			{Time: "2024-05-01T01:00", Temperature: ptr(20.0)},
			{Time: "2024-05-01T00:00", Temperature: ptr(19.0)},
		},
		Daily: []DailyPoint{{Date: "2024-05-01"}},
	}
}

func fixedNow() time.Time { return time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC) }

func TestSnapshotForQuery(t *testing.T) {
	geo := &fakeGeocoder{loc: ResolvedLocation{Lat: 30.27, Lon: -97.74, Label: "Austin, Texas, US"}}
	fc := &fakeForecast{fc: sampleForecast()}
	aq := &fakeAirQuality{samples: map[string]AirQualitySample{
		"2024-05-01T00:00": {USAQI: ptr(30.0), Category: AQIGood, Summary: "Good (AQI 30)"},
	}}
	cache := newMapCache()

	svc := NewService(cache, Sources{Geocoder: geo, Forecast: fc, AirQuality: aq}, nil)
	svc.now = fixedNow

	snap, err := svc.SnapshotForQuery(context.Background(), "Austin, tx")
	require.NoError(t, err)

	assert.Equal(t, CityRegionQuery{City: "Austin", RegionCode: "TX"}, geo.last)
	assert.Equal(t, "America/Chicago", aq.timezone)

	assert.Equal(t, "Austin, Texas, US", snap.Label)
	assert.Equal(t, 30.27, snap.Lat)
	assert.Equal(t, "America/Chicago", snap.Timezone)
	assert.Equal(t, fixedNow(), snap.FetchedAt)
	require.Len(t, snap.Hourly, 2)
	assert.Equal(t, "2024-05-01T00:00", snap.Hourly[0].Time)
	require.NotNil(t, snap.Hourly[0].AirQuality)
	assert.Equal(t, "Good (AQI 30)", snap.Hourly[0].AirQualitySummary)
	assert.Nil(t, snap.Hourly[1].AirQuality)

	_, ok := cache.entries[QueryKey("Austin, tx")]
	assert.True(t, ok, "snapshot stored under query key")
}

func TestSnapshotForQuery_CacheHit(t *testing.T) {
	geo := &fakeGeocoder{loc: ResolvedLocation{Label: "X"}}
	fc := &fakeForecast{fc: sampleForecast()}
	cache := newMapCache()
	svc := NewService(cache, Sources{Geocoder: geo, Forecast: fc}, nil)

	first, err := svc.SnapshotForQuery(context.Background(), "Berlin")
	require.NoError(t, err)
	second, err := svc.SnapshotForQuery(context.Background(), "  berlin ")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, geo.calls)
	assert.Equal(t, 1, fc.calls)
}

func TestSnapshotForQuery_AirQualityFailureStillSucceeds(t *testing.T) {
	geo := &fakeGeocoder{loc: ResolvedLocation{Label: "X"}}
	fc := &fakeForecast{fc: sampleForecast()}
	aq := &fakeAirQuality{err: errors.New("boom")}
	svc := NewService(nil, Sources{Geocoder: geo, Forecast: fc, AirQuality: aq}, nil)

	snap, err := svc.SnapshotForQuery(context.Background(), "Berlin")
	require.NoError(t, err)
	for _, h := range snap.Hourly {
		assert.Nil(t, h.AirQuality)
		assert.Empty(t, h.AirQualitySummary)
	}
}

func TestSnapshotForQuery_NotFound(t *testing.T) {
	geo := &fakeGeocoder{err: &NotFoundError{Query: "Atlantis"}}
	fc := &fakeForecast{}
	cache := newMapCache()
	svc := NewService(cache, Sources{Geocoder: geo, Forecast: fc}, nil)

	_, err := svc.SnapshotForQuery(context.Background(), "Atlantis")

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, `no location found for "Atlantis"`, err.Error())
	assert.Zero(t, fc.calls)
	assert.Empty(t, cache.entries)
}

func TestSnapshotForQuery_ForecastFailure(t *testing.T) {
	geo := &fakeGeocoder{}
	fc := &fakeForecast{err: &UpstreamError{Service: "forecast", StatusCode: 500}}
	cache := newMapCache()
	svc := NewService(cache, Sources{Geocoder: geo, Forecast: fc}, nil)

	_, err := svc.SnapshotForQuery(context.Background(), "Berlin")

	var up *UpstreamError
	require.ErrorAs(t, err, &up)
	assert.Equal(t, 500, up.StatusCode)
	assert.Empty(t, cache.entries)
}

func TestSnapshotForCoordinates(t *testing.T) {
	fc := &fakeForecast{fc: sampleForecast()}
	cache := newMapCache()

	t.Run("reverse label", func(t *testing.T) {
		svc := NewService(cache, Sources{Reverse: fakeReverse{label: "Austin, Texas, US", ok: true}, Forecast: fc}, nil)
		snap, err := svc.SnapshotForCoordinates(context.Background(), 30.26721, -97.74312)
		require.NoError(t, err)
		assert.Equal(t, "Austin, Texas, US", snap.Label)
		assert.Contains(t, cache.entries, "coords:30.2672,-97.7431")
	})

	t.Run("fallback label", func(t *testing.T) {
		svc := NewService(nil, Sources{Reverse: fakeReverse{}, Forecast: fc}, nil)
		snap, err := svc.SnapshotForCoordinates(context.Background(), 51.5, -0.1)
		require.NoError(t, err)
		assert.Equal(t, "51.5000, -0.1000", snap.Label)
	})
}

func TestServiceCacheOps(t *testing.T) {
	cache := newMapCache()
	svc := NewService(cache, Sources{}, nil)

	assert.Equal(t, 3, svc.PurgeCache(context.Background()))
	svc.ClearCache(context.Background())
	assert.True(t, cache.cleared)

	noCache := NewService(nil, Sources{}, nil)
	assert.Zero(t, noCache.PurgeCache(context.Background()))
	noCache.ClearCache(context.Background())
}

func TestResolve_NoGeocoder(t *testing.T) {
	svc := NewService(nil, Sources{}, nil)
	q, _, err := svc.Resolve(context.Background(), "10001")
	require.Error(t, err)
	assert.Equal(t, ZipQuery{Code: "10001"}, q)
}
