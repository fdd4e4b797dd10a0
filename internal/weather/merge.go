package weather

import (
	"slices"
	"strings"
)

// MergeAirQuality attaches air-quality samples to forecast hours by exact
// timestamp key. Hours without a sample keep both air-quality fields unset.
// A nil map leaves every hour without air quality.
// The input slice is not modified.
func MergeAirQuality(hourly []HourlyPoint, samples map[string]AirQualitySample) []HourlyPoint {
	merged := make([]HourlyPoint, len(hourly))

	for i, h := range hourly {
		h.AirQuality = nil
		h.AirQualitySummary = ""

		if sample, ok := samples[h.Time]; ok {
			h.AirQuality = &sample
			h.AirQualitySummary = sample.Summary
		}

		merged[i] = h
	}

	return merged
}

// NormalizeHourly orders hours by timestamp key and drops repeated keys,
// keeping the first occurrence.
func NormalizeHourly(hourly []HourlyPoint) []HourlyPoint {
	return normalize(hourly, func(h HourlyPoint) string { return h.Time })
}

// NormalizeDaily orders days by date key and drops repeated keys, keeping the
// first occurrence.
func NormalizeDaily(daily []DailyPoint) []DailyPoint {
	return normalize(daily, func(d DailyPoint) string { return d.Date })
}

// Keys are fixed-width ISO strings, so lexical order is chronological.
func normalize[T any](points []T, key func(T) string) []T {
	out := slices.Clone(points)
	slices.SortStableFunc(out, func(a, b T) int {
		return strings.Compare(key(a), key(b))
	})

	return slices.CompactFunc(out, func(a, b T) bool {
		return key(a) == key(b)
	})
}
