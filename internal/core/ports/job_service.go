package ports

import (
	"context"

	"github.com/jobhive/jobboard-api/internal/core/domain"
)

// CreateJobInput carries all data needed to post a new job. The geo point
// is resolved server-side from Address; clients never supply coordinates.
type CreateJobInput struct {
	Title       string
	Description string
	Company     string
	Topic       string
	Salary      float64
	Address     string
}

// UpdateJobInput carries the mutable fields for a job update. Empty string
// fields are left unchanged; Salary is applied when SetSalary is true.
type UpdateJobInput struct {
	Title       string
	Description string
	Company     string
	Topic       string
	Salary      float64
	SetSalary   bool
	Address     string
	Active      *bool
}

// JobService defines the job posting lifecycle. Mutations take the caller's
// verified identity for the ownership guard (admins pass implicitly).
type JobService interface {
	Create(ctx context.Context, owner domain.Identity, input CreateJobInput) (*domain.Job, error)
	Update(ctx context.Context, caller domain.Identity, jobID string, input UpdateJobInput) (*domain.Job, error)
	Delete(ctx context.Context, caller domain.Identity, jobID string) error
	Get(ctx context.Context, id, slug string) (*domain.Job, error)
	List(ctx context.Context) ([]*domain.Job, error)
}
