package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MatchComputations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "career_match_computations_total",
			Help: "Match list requests by cache outcome",
		},
		[]string{"cache"},
	)

	MatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "career_match_duration_seconds",
			Help:    "Time spent ranking the catalog for one profile on a cache miss",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
	)

	QuizSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reality_quiz_submissions_total",
			Help: "Scored reality quiz submissions by quiz and result band",
		},
		[]string{"quiz", "band"},
	)

	AssessmentSubmissions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assessment_submissions_total",
			Help: "Stored assessments",
		},
	)

	SubmissionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "submissions_rate_limited_total",
			Help: "Submissions rejected by the per-student rate limiter",
		},
		[]string{"route"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP request latency by route and status",
		},
		[]string{"method", "route", "status"},
	)
)
