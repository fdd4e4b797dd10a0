package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-snapshot/internal/weather"
)

// stubServer serves body with status and records the last query string.
func stubServer(t *testing.T, status int, body string) (Endpoint, *url.Values) {
	t.Helper()
	var last url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		last = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return Endpoint{URL: srv.URL, HTTPClient: srv.Client()}, &last
}

const austinResults = `{"results":[
	{"latitude":43.6,"longitude":-92.9,"name":"Austin","admin1":"Minnesota","country_code":"US"},
	{"latitude":30.27,"longitude":-97.74,"name":"Austin","admin1":"Texas","country_code":"US"}
]}`

func TestOpenMeteoGeocoder_CityRegionPicksRegion(t *testing.T) {
	ep, last := stubServer(t, http.StatusOK, austinResults)
	g := NewOpenMeteoGeocoder(ep)

	loc, err := g.Resolve(context.Background(), weather.CityRegionQuery{City: "Austin", RegionCode: "TX"})
	require.NoError(t, err)

	assert.Equal(t, weather.ResolvedLocation{Lat: 30.27, Lon: -97.74, Label: "Austin, Texas, US"}, loc)
	assert.Equal(t, "Austin", last.Get("name"))
	assert.Equal(t, "10", last.Get("count"))
	assert.Equal(t, "US", last.Get("countryCode"))
	assert.Equal(t, "en", last.Get("language"))
	assert.Equal(t, "json", last.Get("format"))
}

func TestOpenMeteoGeocoder_CityRegionFallsBackToFirst(t *testing.T) {
	ep, _ := stubServer(t, http.StatusOK, austinResults)
	g := NewOpenMeteoGeocoder(ep)

	loc, err := g.Resolve(context.Background(), weather.CityRegionQuery{City: "Austin", RegionCode: "NV"})
	require.NoError(t, err)
	assert.Equal(t, "Austin, Minnesota, US", loc.Label)

	loc, err = g.Resolve(context.Background(), weather.CityRegionQuery{City: "Austin", RegionCode: "ZZ"})
	require.NoError(t, err)
	assert.Equal(t, 43.6, loc.Lat)
}

func TestOpenMeteoGeocoder_ZipAndGeneric(t *testing.T) {
	ep, last := stubServer(t, http.StatusOK, `{"results":[{"latitude":40.75,"longitude":-73.99,"name":"New York","country_code":"US"}]}`)
	g := NewOpenMeteoGeocoder(ep)

	loc, err := g.Resolve(context.Background(), weather.ZipQuery{Code: "10001"})
	require.NoError(t, err)
	assert.Equal(t, "New York, US", loc.Label)
	assert.Equal(t, "10001", last.Get("name"))
	assert.Equal(t, "1", last.Get("count"))
	assert.Equal(t, "US", last.Get("countryCode"))

	_, err = g.Resolve(context.Background(), weather.GenericQuery{Raw: "New York"})
	require.NoError(t, err)
	assert.Equal(t, "New York", last.Get("name"))
	assert.Equal(t, "1", last.Get("count"))
	assert.False(t, last.Has("countryCode"))
}

func TestOpenMeteoGeocoder_NotFound(t *testing.T) {
	for _, body := range []string{`{}`, `{"results":[]}`} {
		ep, _ := stubServer(t, http.StatusOK, body)
		g := NewOpenMeteoGeocoder(ep)

		_, err := g.Resolve(context.Background(), weather.GenericQuery{Raw: "Atlantis"})

		var nf *weather.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "Atlantis", nf.Query)
	}
}

func TestOpenMeteoGeocoder_UpstreamError(t *testing.T) {
	ep, _ := stubServer(t, http.StatusInternalServerError, `oops`)
	g := NewOpenMeteoGeocoder(ep)

	_, err := g.Resolve(context.Background(), weather.ZipQuery{Code: "10001"})

	var up *weather.UpstreamError
	require.ErrorAs(t, err, &up)
	assert.Equal(t, http.StatusInternalServerError, up.StatusCode)
	assert.Equal(t, "geocoding request failed with status 500", err.Error())
}

func TestOpenMeteoGeocoder_MalformedBody(t *testing.T) {
	ep, _ := stubServer(t, http.StatusOK, `{"results":`)
	g := NewOpenMeteoGeocoder(ep)

	_, err := g.Resolve(context.Background(), weather.ZipQuery{Code: "10001"})

	var up *weather.UpstreamError
	require.ErrorAs(t, err, &up)
	assert.Zero(t, up.StatusCode)
}

func TestRegionName(t *testing.T) {
	name, ok := RegionName("tx")
	require.True(t, ok)
	assert.Equal(t, "Texas", name)

	_, ok = RegionName("ZZ")
	assert.False(t, ok)

	assert.Len(t, usRegions, 56)
}
