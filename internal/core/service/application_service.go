package service

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jobhive/jobboard-api/internal/core/domain"
	"github.com/jobhive/jobboard-api/internal/core/ports"
)

var pdfMagic = []byte("%PDF")

// AttachmentPolicy is the resume allow-list: permitted extensions and a
// size ceiling in bytes.
type AttachmentPolicy struct {
	MaxBytes   int64
	Extensions []string
}

// DefaultAttachmentPolicy accepts PDF and Word documents up to 2 MiB.
func DefaultAttachmentPolicy() AttachmentPolicy {
	return AttachmentPolicy{
		MaxBytes:   2 << 20,
		Extensions: []string{".pdf", ".doc", ".docx"},
	}
}

func (p AttachmentPolicy) allows(ext string) bool {
	for _, allowed := range p.Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// ApplicationService stores resume files and appends applications to jobs
// under the one-application-per-user invariant.
type ApplicationService struct {
	repo      ports.JobRepository
	uploadDir string
	policy    AttachmentPolicy
	logger    zerolog.Logger
}

func NewApplicationService(repo ports.JobRepository, uploadDir string, policy AttachmentPolicy, logger zerolog.Logger) *ApplicationService {
	if policy.MaxBytes <= 0 || len(policy.Extensions) == 0 {
		policy = DefaultAttachmentPolicy()
	}
	return &ApplicationService{repo: repo, uploadDir: uploadDir, policy: policy, logger: logger}
}

// Apply validates the resume, stores it under the upload directory and
// appends the application. The duplicate check and the append are one
// conditional update in the repository, so two concurrent applies from the
// same user store exactly one application.
func (s *ApplicationService) Apply(ctx context.Context, jobID string, applicant domain.Identity, resume ports.ResumeUpload) (*domain.Application, error) {
	job, err := s.repo.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !job.AcceptsApplications(time.Now().UTC()) {
		return nil, domain.ErrJobClosed
	}

	path, err := s.storeResume(resume)
	if err != nil {
		return nil, err
	}

	app := domain.Application{
		ID:         uuid.NewString(),
		UserID:     applicant.UserID,
		ResumePath: path,
		AppliedAt:  time.Now().UTC(),
	}

	if err := s.repo.AppendApplication(ctx, jobID, app); err != nil {
		// roll back the stored file; the job keeps no reference to it
		_ = os.Remove(path)
		return nil, err
	}

	s.logger.Info().Str("job_id", jobID).Str("user_id", applicant.UserID).Msg("application submitted")
	return &app, nil
}

// storeResume enforces the attachment policy and writes the file with a
// generated name so uploads can never collide or traverse paths.
func (s *ApplicationService) storeResume(resume ports.ResumeUpload) (string, error) {
	if resume.Open == nil || resume.Filename == "" {
		return "", domain.ErrInvalidAttachment
	}
	if resume.Size <= 0 || resume.Size > s.policy.MaxBytes {
		return "", domain.ErrInvalidAttachment
	}

	ext := strings.ToLower(filepath.Ext(resume.Filename))
	if !s.policy.allows(ext) {
		return "", domain.ErrInvalidAttachment
	}

	src, err := resume.Open()
	if err != nil {
		return "", domain.ErrInvalidAttachment
	}
	defer src.Close()

	// LimitReader guards against clients lying about Size.
	data, err := io.ReadAll(io.LimitReader(src, s.policy.MaxBytes+1))
	if err != nil {
		return "", domain.ErrInvalidAttachment
	}
	if int64(len(data)) > s.policy.MaxBytes {
		return "", domain.ErrInvalidAttachment
	}
	if ext == ".pdf" && !bytes.HasPrefix(data, pdfMagic) {
		return "", domain.ErrInvalidAttachment
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(s.uploadDir, uuid.NewString()+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
