package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ActiveConnections tracks currently connected websocket clients.
	ActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "broker_active_connections",
		Help: "Number of live websocket connections.",
	})

	ChallengesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "broker_challenges_created_total",
		Help: "Challenges successfully created.",
	})

	ChallengesRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "broker_challenges_rejected_total",
		Help: "Challenge requests rejected, by reason.",
	}, []string{"reason"})

	MatchesFormed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "broker_matches_formed_total",
		Help: "Matches formed from accepted challenges.",
	})

	MatchesEnded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "broker_matches_ended_total",
		Help: "Matches torn down after a participant left.",
	})

	SnapshotWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "broker_snapshot_write_failures_total",
		Help: "Failed durable snapshot writes (best-effort, non-fatal).",
	})
)
