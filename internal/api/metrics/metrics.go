// Package metrics defines and registers all custom Prometheus metrics for
// the job board API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time;
// the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "jobboard"

// JobsCreatedTotal counts newly created job postings.
// Label:
//   - topic: the job's category tag
var JobsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_created_total",
		Help:      "Total number of job postings created, by topic.",
	},
	[]string{"topic"},
)

// ApplicationsTotal counts application attempts.
// Label:
//   - result: "accepted", "duplicate", "rejected"
var ApplicationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_total",
		Help:      "Total number of job applications, labelled by outcome.",
	},
	[]string{"result"},
)

// RadiusSearchesTotal counts radius searches.
// Label:
//   - result: "ok" or "geocode_failed"
var RadiusSearchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "radius_searches_total",
		Help:      "Total number of jobs-near-location searches, labelled by outcome.",
	},
	[]string{"result"},
)

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "ok" or "failed"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, labelled by outcome.",
	},
	[]string{"result"},
)
