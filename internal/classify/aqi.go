package classify

import (
	"fmt"
	"math"

	"github.com/i474232898/weather-snapshot/internal/weather"
)

type aqiBand struct {
	max      float64
	category weather.AQICategory
	label    string
}

// aqiBands are the US EPA breakpoints, checked in order against the rounded
// index. The 101-150 band shares the unhealthy category. Anything above the
// last band is hazardous.
var aqiBands = []aqiBand{
	{max: 50, category: weather.AQIGood, label: "Good"},
	{max: 100, category: weather.AQIModerate, label: "Moderate"},
	{max: 150, category: weather.AQIUnhealthy, label: "Unhealthy for sensitive groups"},
	{max: 200, category: weather.AQIUnhealthy, label: "Unhealthy"},
	{max: 300, category: weather.AQIVeryUnhealthy, label: "Very unhealthy"},
}

const unknownAQISummary = "Air quality unknown"

// AQI buckets a US AQI reading. Nil or NaN input is AQIUnknown. Every other
// summary includes the rounded index.
func AQI(usAQI *float64) (weather.AQICategory, string) {
	if usAQI == nil || math.IsNaN(*usAQI) {
		return weather.AQIUnknown, unknownAQISummary
	}

	rounded := math.Round(*usAQI)
	if rounded == 0 {
		rounded = 0 // drop the sign of -0
	}
	for _, band := range aqiBands {
		if rounded <= band.max {
			return band.category, aqiSummary(band.label, rounded)
		}
	}
	return weather.AQIHazardous, aqiSummary("Hazardous", rounded)
}

func aqiSummary(label string, rounded float64) string {
	return fmt.Sprintf("%s (AQI %.0f)", label, rounded)
}
