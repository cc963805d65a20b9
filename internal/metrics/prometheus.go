package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StubGenerations counts stub generation requests by language and outcome.
	StubGenerations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gauntlet_stub_generations_total",
			Help: "Total number of stub generations",
		},
		[]string{"language", "outcome"},
	)

	// JudgeAttempts counts individual HTTP attempts against the judge.
	JudgeAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gauntlet_judge_attempts_total",
			Help: "Total number of judge HTTP attempts",
		},
		[]string{"language", "outcome"},
	)

	// JudgeDuration tracks the wall time of a full judge submission, retry included.
	JudgeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gauntlet_judge_request_duration_seconds",
			Help:    "Duration of judge submissions in seconds",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
		},
		[]string{"language"},
	)

	// Verdicts counts evaluated submissions by language and verdict.
	Verdicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gauntlet_verdicts_total",
			Help: "Total number of evaluated submissions",
		},
		[]string{"language", "verdict"},
	)

	// WorkersActive tracks the number of currently active workers.
	WorkersActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gauntlet_workers_active",
			Help: "Number of currently active worker goroutines",
		},
	)
)
