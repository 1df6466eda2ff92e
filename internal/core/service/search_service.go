package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jobhive/jobboard-api/internal/core/domain"
	"github.com/jobhive/jobboard-api/internal/core/ports"
)

// earthRadiusKm converts a linear search radius into the angular radius
// the spherical containment query expects.
const earthRadiusKm = 6371.0

// SearchService finds jobs near a geocoded location.
type SearchService struct {
	repo     ports.JobRepository
	geocoder ports.Geocoder
	logger   zerolog.Logger
}

func NewSearchService(repo ports.JobRepository, geocoder ports.Geocoder, logger zerolog.Logger) *SearchService {
	return &SearchService{repo: repo, geocoder: geocoder, logger: logger}
}

// FindNear resolves the input to a center point and returns all jobs whose
// stored geo point lies within radiusKm of it, using a spherical query so
// results stay correct at all latitudes.
func (s *SearchService) FindNear(ctx context.Context, zipOrAddress string, radiusKm float64) ([]*domain.Job, error) {
	geo, err := s.geocoder.Resolve(ctx, zipOrAddress)
	if err != nil {
		return nil, err
	}

	jobs, err := s.repo.FindWithinRadius(ctx, geo.Lng, geo.Lat, radiusKm/earthRadiusKm)
	if err != nil {
		s.logger.Error().Err(err).Str("center", geo.Location).Float64("radius_km", radiusKm).Msg("radius query failed")
		return nil, err
	}

	s.logger.Debug().Str("center", geo.Location).Float64("radius_km", radiusKm).Int("matches", len(jobs)).Msg("radius search")
	return jobs, nil
}
