// Package classify derives simple categories from weather values: road
// surface risk from temperature, precipitation and condition code, and air
// quality severity from a US AQI reading.
package classify

import (
	"strings"

	"github.com/i474232898/weather-snapshot/internal/weather"
)

// RoadCondition is the estimated road-surface state for an hour.
type RoadCondition string

const (
	RoadDry         RoadCondition = "dry"
	RoadWet         RoadCondition = "wet"
	RoadSnowIceRisk RoadCondition = "snow_ice_risk"
	RoadUnknown     RoadCondition = "unknown"
)

// wetThresholdMm is the precipitation at which a surface counts as wet.
const wetThresholdMm = 0.1

// wintryCodes are WMO condition codes that put snow or ice on the road.
var wintryCodes = map[int]struct{}{
	56: {}, 57: {}, // freezing drizzle
	66: {}, 67: {}, // freezing rain
	71: {}, 73: {}, 75: {}, // snow fall
	77: {},         // snow grains
	85: {}, 86: {}, // snow showers
	96: {}, 99: {}, // thunderstorm with hail
}

// Description is a fixed human-readable pair for a category.
type Description struct {
	Label  string `json:"label"`
	Detail string `json:"detail"`
}

var roadDescriptions = map[RoadCondition]Description{
	RoadDry: {
		Label:  "Dry",
		Detail: "No meaningful precipitation expected; roads should be dry.",
	},
	RoadWet: {
		Label:  "Wet",
		Detail: "Rain is expected; allow extra stopping distance.",
	},
	RoadSnowIceRisk: {
		Label:  "Snow/ice risk",
		Detail: "Freezing temperatures or wintry precipitation may leave roads slick.",
	},
	RoadUnknown: {
		Label:  "Unknown",
		Detail: "Not enough data to estimate road conditions.",
	},
}

// Road classifies road conditions. A nil temperature gives RoadUnknown; a nil
// precipitation counts as zero. Freezing temperature is checked before the
// condition code, and both before the generic wet case.
func Road(temperatureC, precipitationMm *float64, conditionCode *int) RoadCondition {
	if temperatureC == nil {
		return RoadUnknown
	}

	precip := 0.0
	if precipitationMm != nil {
		precip = *precipitationMm
	}

	switch {
	case precip < wetThresholdMm:
		return RoadDry
	case *temperatureC <= 0:
		return RoadSnowIceRisk
	case conditionCode != nil && isWintry(*conditionCode):
		return RoadSnowIceRisk
	case precip >= wetThresholdMm:
		return RoadWet
	default:
		return RoadDry
	}
}

// RoadForHour classifies a forecast hour.
func RoadForHour(h weather.HourlyPoint) RoadCondition {
	return Road(h.Temperature, h.Precipitation, h.ConditionCode)
}

// RoadForCurrent classifies the snapshot's current conditions. Current
// conditions carry no precipitation, so it is taken from the forecast hour
// containing the current time, if any.
func RoadForCurrent(snap weather.WeatherSnapshot) RoadCondition {
	if snap.Current == nil {
		return RoadUnknown
	}

	var precip *float64
	if hour, ok := hourAt(snap.Hourly, snap.Current.Time); ok {
		precip = hour.Precipitation
	}
	return Road(snap.Current.Temperature, precip, snap.Current.ConditionCode)
}

// DescribeRoad returns the label and detail text for a road condition.
// Unrecognized values describe as RoadUnknown.
func DescribeRoad(c RoadCondition) Description {
	if d, ok := roadDescriptions[c]; ok {
		return d
	}
	return roadDescriptions[RoadUnknown]
}

func isWintry(code int) bool {
	_, ok := wintryCodes[code]
	return ok
}

// hourAt finds the hour whose key shares the YYYY-MM-DDTHH prefix of ts.
func hourAt(hourly []weather.HourlyPoint, ts string) (weather.HourlyPoint, bool) {
	if len(ts) < len("2006-01-02T15") {
		return weather.HourlyPoint{}, false
	}
	prefix := ts[:len("2006-01-02T15")]
	for _, h := range hourly {
		if strings.HasPrefix(h.Time, prefix) {
			return h, true
		}
	}
	return weather.HourlyPoint{}, false
}
