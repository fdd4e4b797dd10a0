package weather

import (
	"time"
)

// AQICategory is the severity bucket of a US AQI reading.
type AQICategory string

const (
	AQIGood          AQICategory = "good"
	AQIModerate      AQICategory = "moderate"
	AQIUnhealthy     AQICategory = "unhealthy"
	AQIVeryUnhealthy AQICategory = "very_unhealthy"
	AQIHazardous     AQICategory = "hazardous"
	AQIUnknown       AQICategory = "unknown"
)

// ResolvedLocation is a geocoded place. It is never mutated after geocoding.
type ResolvedLocation struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Label string  `json:"label"`
}

// AirQualitySample is one hour of air-quality data, keyed externally by the
// same timestamp key as HourlyPoint.
type AirQualitySample struct {
	PM10     *float64    `json:"pm10"`
	PM25     *float64    `json:"pm2_5"`
	Dust     *float64    `json:"dust"`
	UVIndex  *float64    `json:"uvIndex"`
	USAQI    *float64    `json:"usAqi"`
	Category AQICategory `json:"category"`
	Summary  string      `json:"summary"`
}

// HourlyPoint is one forecast hour. Numeric fields are nil when the upstream
// omitted a value and are always metric.
type HourlyPoint struct {
	// Time is the timestamp key (YYYY-MM-DDTHH:MM) in the location's local time.
	Time                string   `json:"time"`
	Temperature         *float64 `json:"temperatureC"`
	ApparentTemperature *float64 `json:"apparentTemperatureC"`
	Precipitation       *float64 `json:"precipitationMm"`
	ConditionCode       *int     `json:"conditionCode"`
	Humidity            *float64 `json:"humidityPercent"`
	WindSpeed           *float64 `json:"windSpeedKmh"`
	WindDirection       *float64 `json:"windDirectionDeg"`
	WindGusts           *float64 `json:"windGustsKmh"`
	CloudCover          *float64 `json:"cloudCoverPercent"`
	Visibility          *float64 `json:"visibilityM"`
	UVIndex             *float64 `json:"uvIndex"`

	AirQuality        *AirQualitySample `json:"airQuality,omitempty"`
	AirQualitySummary string            `json:"airQualitySummary,omitempty"`
}

// DailyPoint is one forecast day keyed by YYYY-MM-DD.
type DailyPoint struct {
	Date          string   `json:"date"`
	TempMax       *float64 `json:"temperatureMaxC"`
	TempMin       *float64 `json:"temperatureMinC"`
	ConditionCode *int     `json:"conditionCode"`
	Sunrise       string   `json:"sunrise,omitempty"`
	Sunset        string   `json:"sunset,omitempty"`
	UVIndexMax    *float64 `json:"uvIndexMax"`
}

// CurrentConditions is the upstream's current-weather snapshot.
type CurrentConditions struct {
	Time          string   `json:"time"`
	Temperature   *float64 `json:"temperatureC"`
	ConditionCode *int     `json:"conditionCode"`
}

// Forecast is what the forecast fetcher returns before air quality is merged
// and the snapshot is labelled.
type Forecast struct {
	Timezone string
	Current  *CurrentConditions
	Hourly   []HourlyPoint
	Daily    []DailyPoint
}

// WeatherSnapshot is the unified weather state for one place. It is the unit
// of caching and the unit handed to callers.
// Hourly and Daily are ordered by their time key ascending with no duplicates.
type WeatherSnapshot struct {
	Lat       float64            `json:"lat"`
	Lon       float64            `json:"lon"`
	Label     string             `json:"label"`
	Timezone  string             `json:"timezone"`
	FetchedAt time.Time          `json:"fetchedAt"`
	Current   *CurrentConditions `json:"current,omitempty"`
	Hourly    []HourlyPoint      `json:"hourly"`
	Daily     []DailyPoint       `json:"daily"`
}
