package providers

import (
	"context"
	"log/slog"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/weather-snapshot/internal/common"
	"github.com/i474232898/weather-snapshot/internal/weather"
)

// GoogleReverseGeocoder implements weather.ReverseGeocoder with the Google
// Geocoding API. It is only wired in when an API key is configured.
//
// The geocoder package keeps its key in a package variable and does not
// accept a context, so cancellation is only checked before the call.
type GoogleReverseGeocoder struct {
	logger *slog.Logger
}

// NewGoogleReverseGeocoder sets the process-wide Google API key.
func NewGoogleReverseGeocoder(apiKey string, logger *slog.Logger) *GoogleReverseGeocoder {
	if logger == nil {
		logger = slog.Default()
	}
	geocoder.ApiKey = apiKey
	return &GoogleReverseGeocoder{logger: logger}
}

// Reverse labels the first address Google returns for the coordinates.
func (g *GoogleReverseGeocoder) Reverse(ctx context.Context, lat, lon float64) (string, bool) {
	if err := ctx.Err(); err != nil {
		return "", false
	}

	addresses, err := geocoder.GeocodingReverse(geocoder.Location{
		Latitude:  lat,
		Longitude: lon,
	})
	if err != nil || len(addresses) == 0 {
		g.logger.WarnContext(ctx, "google reverse geocoding failed", "lat", lat, "lon", lon, "error", err)
		return "", false
	}

	a := addresses[0]
	if a.City != "" {
		return common.JoinNonEmpty(", ", a.City, a.State, a.Country), true
	}
	return nearPostcode(a.PostalCode)
}

var _ weather.ReverseGeocoder = (*GoogleReverseGeocoder)(nil)
