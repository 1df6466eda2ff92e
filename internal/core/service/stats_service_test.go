package service

import (
	"context"
	"testing"

	"github.com/jobhive/jobboard-api/internal/core/domain"
	"github.com/jobhive/jobboard-api/internal/core/ports"
)

func seedTopicJob(t *testing.T, svc *JobService, title, topic string, salary float64) {
	t.Helper()
	if _, err := svc.Create(context.Background(), employer, ports.CreateJobInput{
		Title: title, Description: "d", Company: "Acme", Topic: topic, Salary: salary, Address: "5 Main St",
	}); err != nil {
		t.Fatalf("seed %q: %v", title, err)
	}
}

func TestStatsService_TopicStats(t *testing.T) {
	repo := newStubJobRepo()
	jobs := NewJobService(repo, testGeocoder(), 0, testLogger())
	stats := NewStatsService(repo, testLogger())

	seedTopicJob(t, jobs, "Backend One", "backend", 50000)
	seedTopicJob(t, jobs, "Backend Two", "Backend", 70000)
	seedTopicJob(t, jobs, "Backend Three", "BACKEND", 90000)
	seedTopicJob(t, jobs, "Frontend One", "frontend", 40000)

	result, err := stats.TopicStats(context.Background(), "backend")
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if result.Count != 3 {
		t.Fatalf("expected count 3, got %d", result.Count)
	}
	if result.AvgSalary != 70000 {
		t.Fatalf("expected avg 70000, got %v", result.AvgSalary)
	}
	if result.MinSalary != 50000 || result.MaxSalary != 90000 {
		t.Fatalf("expected min 50000 max 90000, got %v/%v", result.MinSalary, result.MaxSalary)
	}
}

func TestStatsService_TopicStats_NoMatch(t *testing.T) {
	repo := newStubJobRepo()
	jobs := NewJobService(repo, testGeocoder(), 0, testLogger())
	stats := NewStatsService(repo, testLogger())

	seedTopicJob(t, jobs, "Backend One", "backend", 50000)

	if _, err := stats.TopicStats(context.Background(), "unknown-topic"); err != domain.ErrNoMatchingTopic {
		t.Fatalf("expected ErrNoMatchingTopic, got %v", err)
	}
}
