package ports

import "context"

// GeocodeResult is a resolved location: coordinates plus the provider's
// normalized display string.
type GeocodeResult struct {
	Lat      float64
	Lng      float64
	Location string
}

// Geocoder resolves a postal code or free-text address to coordinates.
// Implementations surface domain.ErrGeocodeFailed for unresolvable input;
// a single failed call is never retried by the core.
type Geocoder interface {
	Resolve(ctx context.Context, query string) (*GeocodeResult, error)
}
