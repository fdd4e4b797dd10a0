package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/i474232898/weather-snapshot/internal/weather"
)

func f(v float64) *float64 { return &v }

func TestParseSystem(t *testing.T) {
	assert.Equal(t, Imperial, ParseSystem("imperial"))
	assert.Equal(t, Imperial, ParseSystem(" Imperial "))
	assert.Equal(t, Metric, ParseSystem("metric"))
	assert.Equal(t, Metric, ParseSystem(""))
	assert.Equal(t, Metric, ParseSystem("kelvin"))
}

func TestTemperature(t *testing.T) {
	assert.Equal(t, "32°F", Temperature(f(0), Imperial))
	assert.Equal(t, "0°C", Temperature(f(0), Metric))
	assert.Equal(t, "22°C", Temperature(f(21.6), Metric))
	assert.Equal(t, "-40°F", Temperature(f(-40), Imperial))
	assert.Equal(t, "99°F", Temperature(f(37), Imperial))
	assert.Equal(t, Placeholder, Temperature(nil, Metric))
	assert.Equal(t, Placeholder, Temperature(f(math.NaN()), Imperial))
}

func TestPrecipitation(t *testing.T) {
	assert.Equal(t, "1.00 in", Precipitation(f(25.4), Imperial))
	assert.Equal(t, "2.3 mm", Precipitation(f(2.26), Metric))
	assert.Equal(t, "0.0 mm", Precipitation(f(0), Metric))
	assert.Equal(t, Placeholder, Precipitation(nil, Imperial))
}

func TestWind(t *testing.T) {
	assert.Equal(t, "16 km/h", Wind(f(15.7), Metric))
	assert.Equal(t, "62 mph", Wind(f(100), Imperial))
	assert.Equal(t, Placeholder, Wind(f(math.Inf(1)), Metric))
}

func TestVisibility(t *testing.T) {
	assert.Equal(t, "24.1 km", Visibility(f(24140), Metric))
	assert.Equal(t, "15.1 mi", Visibility(f(24140), Imperial))
	assert.Equal(t, Placeholder, Visibility(nil, Metric))
}

func TestFormatHour(t *testing.T) {
	h := weather.HourlyPoint{
		Time:          "2024-05-01T10:00",
		Temperature:   f(20),
		Precipitation: f(0.5),
		WindSpeed:     f(10),
	}

	got := FormatHour(h, Imperial)
	assert.Equal(t, Hour{
		Time:                "2024-05-01T10:00",
		Temperature:         "68°F",
		ApparentTemperature: Placeholder,
		Precipitation:       "0.02 in",
		WindSpeed:           "6 mph",
		WindGusts:           Placeholder,
		Visibility:          Placeholder,
	}, got)
}
