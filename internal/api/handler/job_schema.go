package handler

import (
	"time"

	"github.com/jobhive/jobboard-api/internal/core/domain"
)

type createJobRequest struct {
	Title       string  `json:"title"       validate:"required"`
	Description string  `json:"description" validate:"required"`
	Company     string  `json:"company"     validate:"required"`
	Topic       string  `json:"topic"       validate:"required"`
	Salary      float64 `json:"salary"      validate:"gte=0"`
	Address     string  `json:"address"     validate:"required"`
}

// updateJobRequest carries optional fields; absent fields leave the job
// unchanged. Coordinates are never accepted from clients.
type updateJobRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Company     string   `json:"company"`
	Topic       string   `json:"topic"`
	Salary      *float64 `json:"salary" validate:"omitempty,gte=0"`
	Address     string   `json:"address"`
	Active      *bool    `json:"active"`
}

// jobResponse is the public view of a job. The embedded application list
// is private to the board; only its size is exposed.
type jobResponse struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	Slug             string          `json:"slug"`
	Description      string          `json:"description"`
	Company          string          `json:"company"`
	Topic            string          `json:"topic"`
	Salary           float64         `json:"salary"`
	Address          string          `json:"address"`
	Location         string          `json:"location"`
	GeoPoint         domain.GeoPoint `json:"geo_point"`
	OwnerID          string          `json:"owner_id"`
	Active           bool            `json:"active"`
	CreatedAt        time.Time       `json:"created_at"`
	ExpiresAt        time.Time       `json:"expires_at"`
	ApplicationCount int             `json:"application_count"`
}

type applicationResponse struct {
	ID        string    `json:"id"`
	JobID     string    `json:"job_id"`
	AppliedAt time.Time `json:"applied_at"`
}

type topicStatsResponse struct {
	Topic     string  `json:"topic"`
	Count     int64   `json:"count"`
	AvgSalary float64 `json:"avg_salary"`
	MinSalary float64 `json:"min_salary"`
	MaxSalary float64 `json:"max_salary"`
}
