// Package metrics exposes Prometheus collectors for the engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FeedRequestsTotal counts recommendation feed requests.
	FeedRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_requests_total",
			Help: "Total number of recommendation feed requests served.",
		},
	)

	// FeedDegradedTotal counts feeds served without an exclusion set
	// because the interaction store was unavailable.
	FeedDegradedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_degraded_total",
			Help: "Total number of feeds served in degraded mode (no swipe exclusion).",
		},
	)

	// SwipesTotal counts recorded swipes by action.
	SwipesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swipes_total",
			Help: "Total number of swipes recorded.",
		},
		[]string{"action"},
	)

	// MatchesCreatedTotal counts match records created on reciprocity.
	MatchesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matches_created_total",
			Help: "Total number of mutual matches created.",
		},
	)

	// MatchCreateFailuresTotal counts soft failures: reciprocity was
	// detected but the match record could not be written.
	MatchCreateFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "match_create_failures_total",
			Help: "Total number of failed match-record writes after a detected reciprocal like.",
		},
	)
)
