package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jobhive/jobboard-api/internal/core/domain"
	"github.com/jobhive/jobboard-api/internal/core/ports"
)

// StatsService computes aggregate statistics over job postings.
type StatsService struct {
	repo   ports.JobRepository
	logger zerolog.Logger
}

func NewStatsService(repo ports.JobRepository, logger zerolog.Logger) *StatsService {
	return &StatsService{repo: repo, logger: logger}
}

// TopicStats runs a single server-side aggregation over all jobs matching
// the topic. Zero matches is reported as domain.ErrNoMatchingTopic so
// "found nothing" is never conflated with a zeroed result.
func (s *StatsService) TopicStats(ctx context.Context, topic string) (*domain.TopicStats, error) {
	stats, err := s.repo.TopicStats(ctx, topic)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Str("topic", topic).Int64("count", stats.Count).Msg("topic stats computed")
	return stats, nil
}
