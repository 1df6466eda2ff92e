package ports

import (
	"context"

	"github.com/jobhive/jobboard-api/internal/core/domain"
)

// StatsService computes aggregate statistics over job postings.
type StatsService interface {
	// TopicStats aggregates count and salary figures over all jobs whose
	// topic matches case-insensitively. Zero matching jobs surfaces
	// domain.ErrNoMatchingTopic rather than a zeroed result.
	TopicStats(ctx context.Context, topic string) (*domain.TopicStats, error)
}
