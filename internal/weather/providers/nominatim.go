package providers

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"golang.org/x/time/rate"

	"github.com/i474232898/weather-snapshot/internal/common"
	"github.com/i474232898/weather-snapshot/internal/weather"
)

const (
	DefaultReverseGeocodingURL = "https://nominatim.openstreetmap.org/reverse"

	// reverseZoom asks for city-level detail.
	reverseZoom = "10"
)

// NominatimReverseGeocoder implements weather.ReverseGeocoder against the
// OpenStreetMap Nominatim reverse API. Requests are rate limited because the
// public instance allows one per second.
type NominatimReverseGeocoder struct {
	client  *upstreamClient
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewNominatimReverseGeocoder creates a reverse geocoder allowing rps requests
// per second; rps <= 0 disables the limit.
func NewNominatimReverseGeocoder(ep Endpoint, rps float64, logger *slog.Logger) *NominatimReverseGeocoder {
	if ep.URL == "" {
		ep.URL = DefaultReverseGeocodingURL
	}
	if logger == nil {
		logger = slog.Default()
	}

	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}

	return &NominatimReverseGeocoder{
		client:  newUpstreamClient("reverse-geocoding", ep),
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
	}
}

type nominatimAddress struct {
	City        string `json:"city"`
	Town        string `json:"town"`
	Village     string `json:"village"`
	Hamlet      string `json:"hamlet"`
	Suburb      string `json:"suburb"`
	State       string `json:"state"`
	CountryCode string `json:"country_code"`
	Postcode    string `json:"postcode"`
}

type nominatimResponse struct {
	Address nominatimAddress `json:"address"`
}

// Reverse returns a label for the coordinates. Any failure is logged and
// reported as ok == false.
func (r *NominatimReverseGeocoder) Reverse(ctx context.Context, lat, lon float64) (string, bool) {
	if err := r.limiter.Wait(ctx); err != nil {
		r.logger.WarnContext(ctx, "reverse geocoding skipped", "lat", lat, "lon", lon, "error", err)
		return "", false
	}

	values := url.Values{}
	values.Set("lat", formatCoord(lat))
	values.Set("lon", formatCoord(lon))
	values.Set("format", "jsonv2")
	values.Set("zoom", reverseZoom)
	values.Set("addressdetails", "1")

	var payload nominatimResponse
	if err := r.client.getJSON(ctx, values, &payload); err != nil {
		r.logger.WarnContext(ctx, "reverse geocoding failed", "lat", lat, "lon", lon, "error", err)
		return "", false
	}

	return addressLabel(payload.Address)
}

// addressLabel prefers the most specific settlement name, joined with the
// region and country code; without one it falls back to the postal code.
func addressLabel(a nominatimAddress) (string, bool) {
	place := common.FirstNonEmpty(a.City, a.Town, a.Village, a.Hamlet, a.Suburb)
	if place != "" {
		return common.JoinNonEmpty(", ", place, a.State, strings.ToUpper(a.CountryCode)), true
	}
	return nearPostcode(a.Postcode)
}

func nearPostcode(postcode string) (string, bool) {
	if postcode = strings.TrimSpace(postcode); postcode != "" {
		return "Near " + postcode, true
	}
	return "", false
}

var _ weather.ReverseGeocoder = (*NominatimReverseGeocoder)(nil)
