package providers

import (
	"context"
	"net/url"
	"strings"

	"github.com/i474232898/weather-snapshot/internal/weather"
)

const DefaultForecastURL = "https://api.open-meteo.com/v1/forecast"

var (
	hourlyVariables = []string{
		"temperature_2m",
		"apparent_temperature",
		"precipitation",
		"relative_humidity_2m",
		"wind_speed_10m",
		"wind_direction_10m",
		"wind_gusts_10m",
		"cloud_cover",
		"visibility",
		"uv_index",
		"weather_code",
	}
	dailyVariables = []string{
		"temperature_2m_max",
		"temperature_2m_min",
		"weather_code",
		"sunrise",
		"sunset",
		"uv_index_max",
	}
)

// OpenMeteoForecaster implements weather.ForecastFetcher for Open-Meteo.
type OpenMeteoForecaster struct {
	client *upstreamClient
}

// NewOpenMeteoForecaster creates a forecaster. An empty URL uses the public API.
func NewOpenMeteoForecaster(ep Endpoint) *OpenMeteoForecaster {
	if ep.URL == "" {
		ep.URL = DefaultForecastURL
	}
	return &OpenMeteoForecaster{client: newUpstreamClient("forecast", ep)}
}

// Open-Meteo returns each variable as an array aligned with time[]. Any
// variable may be absent and any element may be null.
type forecastResponse struct {
	Timezone       string `json:"timezone"`
	CurrentWeather *struct {
		Time        string   `json:"time"`
		Temperature *float64 `json:"temperature"`
		WeatherCode *int     `json:"weathercode"`
	} `json:"current_weather"`
	Hourly struct {
		Time                []string   `json:"time"`
		Temperature2m       []*float64 `json:"temperature_2m"`
		ApparentTemperature []*float64 `json:"apparent_temperature"`
		Precipitation       []*float64 `json:"precipitation"`
		RelativeHumidity2m  []*float64 `json:"relative_humidity_2m"`
		WindSpeed10m        []*float64 `json:"wind_speed_10m"`
		WindDirection10m    []*float64 `json:"wind_direction_10m"`
		WindGusts10m        []*float64 `json:"wind_gusts_10m"`
		CloudCover          []*float64 `json:"cloud_cover"`
		Visibility          []*float64 `json:"visibility"`
		UVIndex             []*float64 `json:"uv_index"`
		WeatherCode         []*int     `json:"weather_code"`
	} `json:"hourly"`
	Daily struct {
		Time             []string   `json:"time"`
		Temperature2mMax []*float64 `json:"temperature_2m_max"`
		Temperature2mMin []*float64 `json:"temperature_2m_min"`
		WeatherCode      []*int     `json:"weather_code"`
		Sunrise          []string   `json:"sunrise"`
		Sunset           []string   `json:"sunset"`
		UVIndexMax       []*float64 `json:"uv_index_max"`
	} `json:"daily"`
}

// FetchForecast requests hourly, daily and current conditions with the
// timezone chosen by the provider. Missing variables become nil fields.
func (p *OpenMeteoForecaster) FetchForecast(ctx context.Context, lat, lon float64) (weather.Forecast, error) {
	values := url.Values{}
	values.Set("latitude", formatCoord(lat))
	values.Set("longitude", formatCoord(lon))
	values.Set("hourly", strings.Join(hourlyVariables, ","))
	values.Set("daily", strings.Join(dailyVariables, ","))
	values.Set("current_weather", "true")
	values.Set("timezone", "auto")

	var payload forecastResponse
	if err := p.client.getJSON(ctx, values, &payload); err != nil {
		return weather.Forecast{}, err
	}

	return parseForecast(payload), nil
}

func parseForecast(payload forecastResponse) weather.Forecast {
	fc := weather.Forecast{
		Timezone: payload.Timezone,
		Hourly:   make([]weather.HourlyPoint, 0, len(payload.Hourly.Time)),
		Daily:    make([]weather.DailyPoint, 0, len(payload.Daily.Time)),
	}

	if cw := payload.CurrentWeather; cw != nil {
		fc.Current = &weather.CurrentConditions{
			Time:          cw.Time,
			Temperature:   cw.Temperature,
			ConditionCode: cw.WeatherCode,
		}
	}

	h := payload.Hourly
	for i, ts := range h.Time {
		fc.Hourly = append(fc.Hourly, weather.HourlyPoint{
			Time:                ts,
			Temperature:         at(h.Temperature2m, i),
			ApparentTemperature: at(h.ApparentTemperature, i),
			Precipitation:       at(h.Precipitation, i),
			ConditionCode:       at(h.WeatherCode, i),
			Humidity:            at(h.RelativeHumidity2m, i),
			WindSpeed:           at(h.WindSpeed10m, i),
			WindDirection:       at(h.WindDirection10m, i),
			WindGusts:           at(h.WindGusts10m, i),
			CloudCover:          at(h.CloudCover, i),
			Visibility:          at(h.Visibility, i),
			UVIndex:             at(h.UVIndex, i),
		})
	}

	d := payload.Daily
	for i, date := range d.Time {
		fc.Daily = append(fc.Daily, weather.DailyPoint{
			Date:          date,
			TempMax:       at(d.Temperature2mMax, i),
			TempMin:       at(d.Temperature2mMin, i),
			ConditionCode: at(d.WeatherCode, i),
			Sunrise:       stringAt(d.Sunrise, i),
			Sunset:        stringAt(d.Sunset, i),
			UVIndexMax:    at(d.UVIndexMax, i),
		})
	}

	return fc
}

var _ weather.ForecastFetcher = (*OpenMeteoForecaster)(nil)
