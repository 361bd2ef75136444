package challenge

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	challengesIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cerberus_challenges_issued",
		Help: "The total number of challenges issued",
	}, []string{"method"})

	challengesSolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cerberus_challenges_solved",
		Help: "The total number of challenges solved",
	}, []string{"method"})

	challengesRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cerberus_challenges_rejected",
		Help: "The total number of well-formed submissions that missed the difficulty target",
	}, []string{"method"})

	malformedSubmissions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cerberus_malformed_submissions",
		Help: "The total number of submissions that were not a non-negative integer",
	})

	challengesRevoked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cerberus_challenges_revoked",
		Help: "The total number of challenges revoked without being solved",
	})

	// TimeToSolve tracks how long members take between issuance and an
	// accepted submission (seconds).
	TimeToSolve = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cerberus_time_to_solve",
		Help:    "The time between challenge issuance and an accepted solution (seconds)",
		Buckets: prometheus.ExponentialBucketsRange(1, 86400, 16),
	}, []string{"method"})
)
