package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-snapshot/internal/weather"
)

// DefaultUserAgent identifies this service to upstreams that require one.
const DefaultUserAgent = "weather-snapshot/1.0"

// Endpoint describes how to reach one upstream API.
type Endpoint struct {
	URL        string
	HTTPClient *http.Client // nil uses a client without timeout
	UserAgent  string
}

// upstreamClient issues GET requests against one upstream through a circuit
// breaker. It never retries; a failed call surfaces immediately.
type upstreamClient struct {
	service  string
	endpoint string
	http     *resty.Client
	circuit  *gobreaker.CircuitBreaker
}

func newUpstreamClient(service string, ep Endpoint) *upstreamClient {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        service,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
		// Client errors say nothing about upstream health.
		IsSuccessful: func(err error) bool {
			var upErr *weather.UpstreamError
			if errors.As(err, &upErr) && upErr.StatusCode >= 400 && upErr.StatusCode < 500 {
				return true
			}
			return err == nil
		},
	})

	httpClient := ep.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	userAgent := ep.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	rc := resty.NewWithClient(httpClient).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json")

	return &upstreamClient{
		service:  service,
		endpoint: ep.URL,
		http:     rc,
		circuit:  cb,
	}
}

// getJSON requests the endpoint with params and decodes the body into out.
// Every failure is returned as *weather.UpstreamError.
func (c *upstreamClient) getJSON(ctx context.Context, params url.Values, out any) error {
	result, err := c.circuit.Execute(func() (interface{}, error) {
		resp, err := c.http.R().
			SetContext(ctx).
			SetQueryParamsFromValues(params).
			Get(c.endpoint)
		if err != nil {
			return nil, err
		}
		if !resp.IsSuccess() {
			return nil, &weather.UpstreamError{Service: c.service, StatusCode: resp.StatusCode()}
		}
		return resp.Body(), nil
	})
	if err != nil {
		var upErr *weather.UpstreamError
		if errors.As(err, &upErr) {
			return upErr
		}
		return &weather.UpstreamError{Service: c.service, Err: err}
	}

	body, ok := result.([]byte)
	if !ok {
		return &weather.UpstreamError{Service: c.service, Err: fmt.Errorf("unexpected result type %T from circuit breaker", result)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &weather.UpstreamError{Service: c.service, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// at returns xs[i], or nil when the array is missing or too short.
func at[T any](xs []*T, i int) *T {
	if i < 0 || i >= len(xs) {
		return nil
	}
	return xs[i]
}

// stringAt returns xs[i], or "" when the array is missing or too short.
func stringAt(xs []string, i int) string {
	if i < 0 || i >= len(xs) {
		return ""
	}
	return xs[i]
}
