package weather

import (
	"fmt"
)

// NotFoundError is returned when the geocoder has no result for a query.
type NotFoundError struct {
	Query string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no location found for %q", e.Query)
}

// UpstreamError is returned when an upstream API call fails: a non-success
// HTTP status, a transport error, an open circuit, or an unreadable payload.
// StatusCode is zero when no HTTP response was received.
type UpstreamError struct {
	Service    string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s request failed with status %d", e.Service, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s request failed: %v", e.Service, e.Err)
	}
	return fmt.Sprintf("%s request failed", e.Service)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
