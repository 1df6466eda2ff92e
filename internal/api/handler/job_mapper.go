package handler

import (
	"github.com/jobhive/jobboard-api/internal/core/domain"
	"github.com/jobhive/jobboard-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateJobInput(req createJobRequest) ports.CreateJobInput {
	return ports.CreateJobInput{
		Title:       req.Title,
		Description: req.Description,
		Company:     req.Company,
		Topic:       req.Topic,
		Salary:      req.Salary,
		Address:     req.Address,
	}
}

func toUpdateJobInput(req updateJobRequest) ports.UpdateJobInput {
	input := ports.UpdateJobInput{
		Title:       req.Title,
		Description: req.Description,
		Company:     req.Company,
		Topic:       req.Topic,
		Address:     req.Address,
		Active:      req.Active,
	}
	if req.Salary != nil {
		input.Salary = *req.Salary
		input.SetSalary = true
	}
	return input
}

// --- Domain → HTTP response ---

func toJobResponse(j *domain.Job) jobResponse {
	return jobResponse{
		ID:               j.ID,
		Title:            j.Title,
		Slug:             j.Slug,
		Description:      j.Description,
		Company:          j.Company,
		Topic:            j.Topic,
		Salary:           j.Salary,
		Address:          j.Address,
		Location:         j.Location,
		GeoPoint:         j.GeoPoint,
		OwnerID:          j.OwnerID,
		Active:           j.Active,
		CreatedAt:        j.CreatedAt.UTC(),
		ExpiresAt:        j.ExpiresAt.UTC(),
		ApplicationCount: len(j.Applications),
	}
}

func toJobListResponse(jobs []*domain.Job) []jobResponse {
	out := make([]jobResponse, len(jobs))
	for i, j := range jobs {
		out[i] = toJobResponse(j)
	}
	return out
}

func toApplicationResponse(jobID string, app *domain.Application) applicationResponse {
	return applicationResponse{
		ID:        app.ID,
		JobID:     jobID,
		AppliedAt: app.AppliedAt.UTC(),
	}
}

func toTopicStatsResponse(s *domain.TopicStats) topicStatsResponse {
	return topicStatsResponse{
		Topic:     s.Topic,
		Count:     s.Count,
		AvgSalary: s.AvgSalary,
		MinSalary: s.MinSalary,
		MaxSalary: s.MaxSalary,
	}
}
