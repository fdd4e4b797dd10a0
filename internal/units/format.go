// Package units formats metric weather values for display in either the
// metric or imperial system.
package units

import (
	"fmt"
	"math"
	"strings"

	"github.com/i474232898/weather-snapshot/internal/weather"
)

// System is a unit system.
type System string

const (
	Metric   System = "metric"
	Imperial System = "imperial"
)

// Placeholder is shown in place of a missing value.
const Placeholder = "—"

const (
	mmPerInch      = 25.4
	kmPerMile      = 1.609344
	milesPerMeter  = 6.27137e-4
	metersPerKm    = 1000.0
	fahrenheitRate = 9.0 / 5.0
)

// ParseSystem maps a user-supplied name to a System. Anything other than
// "imperial" is Metric.
func ParseSystem(s string) System {
	if strings.EqualFold(strings.TrimSpace(s), string(Imperial)) {
		return Imperial
	}
	return Metric
}

// Temperature formats degrees Celsius.
func Temperature(celsius *float64, sys System) string {
	v, ok := value(celsius)
	if !ok {
		return Placeholder
	}
	if sys == Imperial {
		return fmt.Sprintf("%d°F", round(v*fahrenheitRate+32))
	}
	return fmt.Sprintf("%d°C", round(v))
}

// Precipitation formats millimetres.
func Precipitation(mm *float64, sys System) string {
	v, ok := value(mm)
	if !ok {
		return Placeholder
	}
	if sys == Imperial {
		return fmt.Sprintf("%.2f in", v/mmPerInch)
	}
	return fmt.Sprintf("%.1f mm", v)
}

// Wind formats a speed in km/h.
func Wind(kmh *float64, sys System) string {
	v, ok := value(kmh)
	if !ok {
		return Placeholder
	}
	if sys == Imperial {
		return fmt.Sprintf("%d mph", round(v/kmPerMile))
	}
	return fmt.Sprintf("%d km/h", round(v))
}

// Visibility formats a distance in metres.
func Visibility(meters *float64, sys System) string {
	v, ok := value(meters)
	if !ok {
		return Placeholder
	}
	if sys == Imperial {
		return fmt.Sprintf("%.1f mi", v*milesPerMeter)
	}
	return fmt.Sprintf("%.1f km", v/metersPerKm)
}

// Hour holds the display strings for one forecast hour.
type Hour struct {
	Time                string `json:"time"`
	Temperature         string `json:"temperature"`
	ApparentTemperature string `json:"apparentTemperature"`
	Precipitation       string `json:"precipitation"`
	WindSpeed           string `json:"windSpeed"`
	WindGusts           string `json:"windGusts"`
	Visibility          string `json:"visibility"`
}

// FormatHour formats every unit-bearing field of h.
func FormatHour(h weather.HourlyPoint, sys System) Hour {
	return Hour{
		Time:                h.Time,
		Temperature:         Temperature(h.Temperature, sys),
		ApparentTemperature: Temperature(h.ApparentTemperature, sys),
		Precipitation:       Precipitation(h.Precipitation, sys),
		WindSpeed:           Wind(h.WindSpeed, sys),
		WindGusts:           Wind(h.WindGusts, sys),
		Visibility:          Visibility(h.Visibility, sys),
	}
}

func value(v *float64) (float64, bool) {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0, false
	}
	return *v, true
}

func round(v float64) int {
	return int(math.Round(v))
}
