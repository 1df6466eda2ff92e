package ports

import (
	"context"

	"github.com/jobhive/jobboard-api/internal/core/domain"
)

// JobRepository defines persistence operations for job postings.
type JobRepository interface {
	// Create inserts a job. A slug collision surfaces domain.ErrDuplicateSlug
	// (unique index at the store level, never a silent overwrite).
	Create(ctx context.Context, job *domain.Job) (*domain.Job, error)
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	// FindByIDSlug retrieves a job only when both id and slug match.
	FindByIDSlug(ctx context.Context, id, slug string) (*domain.Job, error)
	List(ctx context.Context) ([]*domain.Job, error)
	Update(ctx context.Context, job *domain.Job) (*domain.Job, error)
	Delete(ctx context.Context, id string) error

	// FindWithinRadius returns jobs whose geo point lies within radiusRad
	// (an angular radius in radians) of the given center, using a
	// spherical containment query. No matches yields an empty slice.
	FindWithinRadius(ctx context.Context, lng, lat, radiusRad float64) ([]*domain.Job, error)

	// TopicStats computes count/avg/min/max salary over all jobs whose
	// topic matches case-insensitively. Zero matches surfaces
	// domain.ErrNoMatchingTopic.
	TopicStats(ctx context.Context, topic string) (*domain.TopicStats, error)

	// AppendApplication atomically appends app to the job's application
	// list, but only when no application from the same user exists. The
	// existence check and the append are a single conditional update, so
	// concurrent applies from one user store exactly one application.
	// Returns domain.ErrDuplicateApplication when the condition fails.
	AppendApplication(ctx context.Context, jobID string, app domain.Application) error
}
