package ports

import (
	"context"
	"io"

	"github.com/jobhive/jobboard-api/internal/core/domain"
)

// ResumeUpload carries the uploaded resume file handed over by the
// transport layer.
type ResumeUpload struct {
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

// ApplicationService manages the single-application-per-user workflow.
type ApplicationService interface {
	// Apply validates the resume against the attachment policy, stores the
	// file and appends the application to the job atomically. A second
	// apply by the same user surfaces domain.ErrDuplicateApplication.
	Apply(ctx context.Context, jobID string, applicant domain.Identity, resume ResumeUpload) (*domain.Application, error)
}
