package domain

import (
	"errors"
	"time"
)

var ErrJobNotFound = errors.New("job not found")
var ErrDuplicateSlug = errors.New("job slug already exists")
var ErrGeocodeFailed = errors.New("address could not be geocoded")
var ErrDuplicateApplication = errors.New("application already submitted")
var ErrInvalidAttachment = errors.New("invalid resume attachment")
var ErrNoMatchingTopic = errors.New("no jobs match the requested topic")
var ErrJobClosed = errors.New("job is no longer accepting applications")

// GeoPoint is a GeoJSON point. Coordinates are [longitude, latitude],
// the order MongoDB's 2dsphere index expects.
type GeoPoint struct {
	Type        string    `json:"type" bson:"type"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates"`
}

// NewGeoPoint builds a GeoJSON point from a longitude/latitude pair.
func NewGeoPoint(lng, lat float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}}
}

// Application records a single user's application to a job. Applications
// are embedded in the job document, append-only and never mutated.
type Application struct {
	ID         string    `json:"id" bson:"id"`
	UserID     string    `json:"user_id" bson:"user_id"`
	ResumePath string    `json:"resume_path" bson:"resume_path"`
	AppliedAt  time.Time `json:"applied_at" bson:"applied_at"`
}

// Job is the core aggregate root. The geo point is always derived from the
// address by the geocoder before persisting, never supplied by a client.
type Job struct {
	ID           string        `json:"id" bson:"_id,omitempty"`
	Title        string        `json:"title" bson:"title"`
	Slug         string        `json:"slug" bson:"slug"`
	Description  string        `json:"description" bson:"description"`
	Company      string        `json:"company" bson:"company"`
	Topic        string        `json:"topic" bson:"topic"`
	Salary       float64       `json:"salary" bson:"salary"`
	Address      string        `json:"address" bson:"address"`
	Location     string        `json:"location" bson:"location"`
	GeoPoint     GeoPoint      `json:"geo_point" bson:"geo_point"`
	OwnerID      string        `json:"owner_id" bson:"owner_id"`
	Active       bool          `json:"active" bson:"active"`
	CreatedAt    time.Time     `json:"created_at" bson:"created_at"`
	ExpiresAt    time.Time     `json:"expires_at" bson:"expires_at"`
	Applications []Application `json:"applications" bson:"applications"`
}

// AcceptsApplications reports whether a job can still be applied to.
func (j *Job) AcceptsApplications(now time.Time) bool {
	return j.Active && now.Before(j.ExpiresAt)
}

// TopicStats is the aggregate computed over all jobs sharing a topic.
type TopicStats struct {
	Topic     string  `json:"topic"`
	Count     int64   `json:"count"`
	AvgSalary float64 `json:"avg_salary"`
	MinSalary float64 `json:"min_salary"`
	MaxSalary float64 `json:"max_salary"`
}
