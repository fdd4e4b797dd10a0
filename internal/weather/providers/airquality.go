package providers

import (
	"context"
	"net/url"

	"github.com/i474232898/weather-snapshot/internal/classify"
	"github.com/i474232898/weather-snapshot/internal/weather"
)

const DefaultAirQualityURL = "https://air-quality-api.open-meteo.com/v1/air-quality"

// OpenMeteoAirQuality implements weather.AirQualityFetcher for the Open-Meteo
// air-quality API.
type OpenMeteoAirQuality struct {
	client *upstreamClient
}

// NewOpenMeteoAirQuality creates a fetcher. An empty URL uses the public API.
func NewOpenMeteoAirQuality(ep Endpoint) *OpenMeteoAirQuality {
	if ep.URL == "" {
		ep.URL = DefaultAirQualityURL
	}
	return &OpenMeteoAirQuality{client: newUpstreamClient("air-quality", ep)}
}

type airQualityResponse struct {
	Hourly struct {
		Time    []string   `json:"time"`
		PM10    []*float64 `json:"pm10"`
		PM25    []*float64 `json:"pm2_5"`
		Dust    []*float64 `json:"dust"`
		UVIndex []*float64 `json:"uv_index"`
		USAQI   []*float64 `json:"us_aqi"`
	} `json:"hourly"`
}

// FetchAirQuality returns samples keyed by the provider's own timestamp
// strings, each classified by its US AQI.
func (p *OpenMeteoAirQuality) FetchAirQuality(ctx context.Context, lat, lon float64, timezone string) (map[string]weather.AirQualitySample, error) {
	values := url.Values{}
	values.Set("latitude", formatCoord(lat))
	values.Set("longitude", formatCoord(lon))
	values.Set("hourly", "pm10,pm2_5,dust,uv_index,us_aqi")
	values.Set("timezone", timezone)

	var payload airQualityResponse
	if err := p.client.getJSON(ctx, values, &payload); err != nil {
		return nil, err
	}

	h := payload.Hourly
	samples := make(map[string]weather.AirQualitySample, len(h.Time))
	for i, ts := range h.Time {
		usAQI := at(h.USAQI, i)
		category, summary := classify.AQI(usAQI)
		samples[ts] = weather.AirQualitySample{
			PM10:     at(h.PM10, i),
			PM25:     at(h.PM25, i),
			Dust:     at(h.Dust, i),
			UVIndex:  at(h.UVIndex, i),
			USAQI:    usAQI,
			Category: category,
			Summary:  summary,
		}
	}
	return samples, nil
}

var _ weather.AirQualityFetcher = (*OpenMeteoAirQuality)(nil)
