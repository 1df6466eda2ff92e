package ports

import (
	"context"

	"github.com/jobhive/jobboard-api/internal/core/domain"
)

// SearchService finds jobs near a location.
type SearchService interface {
	// FindNear resolves zipOrAddress to a geo point and returns all jobs
	// within radiusKm kilometres of it. An unresolvable input surfaces
	// domain.ErrGeocodeFailed; no matches returns an empty slice.
	FindNear(ctx context.Context, zipOrAddress string, radiusKm float64) ([]*domain.Job, error)
}
