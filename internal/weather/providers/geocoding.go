package providers

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/i474232898/weather-snapshot/internal/common"
	"github.com/i474232898/weather-snapshot/internal/weather"
)

const (
	DefaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"

	// postalCountry is the country zip and city/region lookups are limited to.
	postalCountry = "US"

	cityRegionCandidates = 10
)

// OpenMeteoGeocoder implements weather.Geocoder against the Open-Meteo
// geocoding search API.
type OpenMeteoGeocoder struct {
	client *upstreamClient
}

// NewOpenMeteoGeocoder creates a geocoder. An empty URL uses the public API.
func NewOpenMeteoGeocoder(ep Endpoint) *OpenMeteoGeocoder {
	if ep.URL == "" {
		ep.URL = DefaultGeocodingURL
	}
	return &OpenMeteoGeocoder{client: newUpstreamClient("geocoding", ep)}
}

type geocodingResult struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Name        string  `json:"name"`
	Admin1      string  `json:"admin1"`
	CountryCode string  `json:"country_code"`
}

type geocodingResponse struct {
	Results []geocodingResult `json:"results"`
}

// Resolve geocodes q. Zip codes and city/region queries are restricted to
// the US; a city/region query prefers the first candidate in the named region.
func (g *OpenMeteoGeocoder) Resolve(ctx context.Context, q weather.LocationQuery) (weather.ResolvedLocation, error) {
	params := url.Values{}
	params.Set("language", "en")
	params.Set("format", "json")

	switch q := q.(type) {
	case weather.ZipQuery:
		params.Set("name", q.Code)
		params.Set("count", "1")
		params.Set("countryCode", postalCountry)
	case weather.CityRegionQuery:
		params.Set("name", q.City)
		params.Set("count", strconv.Itoa(cityRegionCandidates))
		params.Set("countryCode", postalCountry)
	case weather.GenericQuery:
		params.Set("name", q.Raw)
		params.Set("count", "1")
	default:
		return weather.ResolvedLocation{}, fmt.Errorf("unsupported location query %T", q)
	}

	var payload geocodingResponse
	if err := g.client.getJSON(ctx, params, &payload); err != nil {
		return weather.ResolvedLocation{}, err
	}
	if len(payload.Results) == 0 {
		return weather.ResolvedLocation{}, &weather.NotFoundError{Query: q.Text()}
	}

	best := payload.Results[0]
	if cr, ok := q.(weather.CityRegionQuery); ok {
		best = pickRegion(payload.Results, cr.RegionCode)
	}

	return weather.ResolvedLocation{
		Lat:   best.Latitude,
		Lon:   best.Longitude,
		Label: common.JoinNonEmpty(", ", best.Name, best.Admin1, best.CountryCode),
	}, nil
}

// pickRegion returns the first candidate whose admin1 is the region named by
// code, or the first candidate when none match. results must be non-empty.
func pickRegion(results []geocodingResult, code string) geocodingResult {
	if region, ok := RegionName(code); ok {
		for _, r := range results {
			if strings.EqualFold(strings.TrimSpace(r.Admin1), region) {
				return r
			}
		}
	}
	return results[0]
}

var _ weather.Geocoder = (*OpenMeteoGeocoder)(nil)
