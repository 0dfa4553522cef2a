// Package metrics exposes Prometheus collectors for the evaluation service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Evaluations counts comparison evaluations by scenario and outcome.
	Evaluations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lhb_evaluations_total",
			Help: "Total comparison evaluations served, by scenario and status.",
		},
		[]string{"scenario", "status"},
	)

	// CacheLookups counts evaluation cache lookups by result.
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lhb_cache_lookups_total",
			Help: "Evaluation cache lookups, by hit or miss.",
		},
		[]string{"result"},
	)

	// BreakevenSolves counts break-even appreciation solves by convergence.
	BreakevenSolves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lhb_breakeven_solves_total",
			Help: "Break-even appreciation solves, by convergence outcome.",
		},
		[]string{"converged"},
	)

	// RequestDuration observes wall time per API endpoint.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lhb_request_duration_seconds",
			Help:    "API request duration in seconds, by endpoint.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// RateLimited counts requests rejected by the per-client rate limiter.
	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lhb_rate_limited_total",
			Help: "Requests rejected because the client exceeded its rate limit.",
		},
	)
)
