package weather

import (
	"math"
	"strconv"
	"strings"
)

// CoordinateKey returns the cache key for a coordinate pair. Coordinates are
// rounded to 4 decimal places so near-duplicates share an entry.
func CoordinateKey(lat, lon float64) string {
	return "coords:" + formatCoord(lat) + "," + formatCoord(lon)
}

// QueryKey returns the cache key for free-text input.
func QueryKey(text string) string {
	return "query:" + strings.ToLower(strings.TrimSpace(text))
}

func formatCoord(v float64) string {
	r := math.Round(v*1e4) / 1e4
	if r == 0 {
		// normalise -0
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
