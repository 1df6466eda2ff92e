package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobhive/jobboard-api/internal/core/domain"
	"github.com/jobhive/jobboard-api/internal/core/ports"
)

// JobService implements the job posting lifecycle. Every create and update
// that touches the address geocodes synchronously before persisting, so a
// stored job always carries a valid geo point.
type JobService struct {
	repo       ports.JobRepository
	geocoder   ports.Geocoder
	postingTTL time.Duration
	logger     zerolog.Logger
}

func NewJobService(repo ports.JobRepository, geocoder ports.Geocoder, postingTTL time.Duration, logger zerolog.Logger) *JobService {
	if postingTTL <= 0 {
		postingTTL = 7 * 24 * time.Hour
	}
	return &JobService{repo: repo, geocoder: geocoder, postingTTL: postingTTL, logger: logger}
}

func (s *JobService) Create(ctx context.Context, owner domain.Identity, input ports.CreateJobInput) (*domain.Job, error) {
	geo, err := s.geocoder.Resolve(ctx, input.Address)
	if err != nil {
		s.logger.Warn().Err(err).Str("address", input.Address).Msg("geocoding failed, job not persisted")
		return nil, err
	}

	now := time.Now().UTC()
	job := &domain.Job{
		Title:        input.Title,
		Slug:         slugify(input.Title),
		Description:  input.Description,
		Company:      input.Company,
		Topic:        input.Topic,
		Salary:       input.Salary,
		Address:      input.Address,
		Location:     geo.Location,
		GeoPoint:     domain.NewGeoPoint(geo.Lng, geo.Lat),
		OwnerID:      owner.UserID,
		Active:       true,
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.postingTTL),
		Applications: []domain.Application{},
	}

	created, err := s.createWithSlugRetry(ctx, job)
	if err != nil {
		s.logger.Error().Err(err).Str("slug", job.Slug).Msg("failed to create job")
		return nil, err
	}

	s.logger.Info().Str("job_id", created.ID).Str("slug", created.Slug).Str("owner_id", owner.UserID).Msg("job created")
	return created, nil
}

// createWithSlugRetry inserts the job and, when the unique slug index
// rejects it, retries once with a disambiguated slug. A second collision
// is surfaced to the caller.
func (s *JobService) createWithSlugRetry(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	created, err := s.repo.Create(ctx, job)
	if !errors.Is(err, domain.ErrDuplicateSlug) {
		return created, err
	}

	job.Slug = disambiguateSlug(job.Slug)
	return s.repo.Create(ctx, job)
}

func (s *JobService) Update(ctx context.Context, caller domain.Identity, jobID string, input ports.UpdateJobInput) (*domain.Job, error) {
	job, err := s.repo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !caller.CanManage(job.OwnerID) {
		return nil, domain.ErrForbidden
	}

	if input.Title != "" && input.Title != job.Title {
		job.Title = input.Title
		job.Slug = slugify(input.Title)
	}
	if input.Description != "" {
		job.Description = input.Description
	}
	if input.Company != "" {
		job.Company = input.Company
	}
	if input.Topic != "" {
		job.Topic = input.Topic
	}
	if input.SetSalary {
		job.Salary = input.Salary
	}
	if input.Active != nil {
		job.Active = *input.Active
	}
	if input.Address != "" && input.Address != job.Address {
		geo, err := s.geocoder.Resolve(ctx, input.Address)
		if err != nil {
			return nil, err
		}
		job.Address = input.Address
		job.Location = geo.Location
		job.GeoPoint = domain.NewGeoPoint(geo.Lng, geo.Lat)
	}

	updated, err := s.repo.Update(ctx, job)
	if errors.Is(err, domain.ErrDuplicateSlug) {
		job.Slug = disambiguateSlug(job.Slug)
		updated, err = s.repo.Update(ctx, job)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("job_id", jobID).Str("user_id", caller.UserID).Msg("job updated")
	return updated, nil
}

func (s *JobService) Delete(ctx context.Context, caller domain.Identity, jobID string) error {
	job, err := s.repo.FindByID(ctx, jobID)
	if err != nil {
		return err
	}
	if !caller.CanManage(job.OwnerID) {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, jobID); err != nil {
		return err
	}
	s.logger.Info().Str("job_id", jobID).Str("user_id", caller.UserID).Msg("job deleted")
	return nil
}

func (s *JobService) Get(ctx context.Context, id, slug string) (*domain.Job, error) {
	return s.repo.FindByIDSlug(ctx, id, slug)
}

func (s *JobService) List(ctx context.Context) ([]*domain.Job, error) {
	return s.repo.List(ctx)
}
