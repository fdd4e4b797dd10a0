package providers

import (
	"context"

	"github.com/i474232898/weather-snapshot/internal/weather"
)

// ReverseChain tries each reverse geocoder in order and returns the first
// label produced.
type ReverseChain []weather.ReverseGeocoder

func (c ReverseChain) Reverse(ctx context.Context, lat, lon float64) (string, bool) {
	for _, r := range c {
		if r == nil {
			continue
		}
		if label, ok := r.Reverse(ctx, lat, lon); ok {
			return label, true
		}
	}
	return "", false
}

var _ weather.ReverseGeocoder = ReverseChain(nil)
