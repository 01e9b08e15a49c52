// Package metrics defines and registers all custom Prometheus metrics for
// the parking enforcement API. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "enforcement"

// EvaluationsTotal counts completed inspection evaluations.
// Label:
//   - classification: the lifecycle outcome (e.g. "valid_here", "grace_expired")
var EvaluationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "evaluations_total",
		Help:      "Total number of inspection evaluations, by classification.",
	},
	[]string{"classification"},
)

// CitationsAuthorizedTotal counts evaluations that authorized a citation.
var CitationsAuthorizedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "citations_authorized_total",
		Help:      "Total number of evaluations that authorized a citation.",
	},
)

// EvaluationDuration measures how long one evaluation takes end-to-end.
// Label:
//   - classification: the lifecycle outcome, or "error" on failure
var EvaluationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "evaluation_duration_seconds",
		Help:      "Duration of inspection evaluation from request to decision.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"classification"},
)

// SpotListingsTotal counts street listing requests.
// Label:
//   - outcome: "ok", "empty", or "error"
var SpotListingsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "spot_listings_total",
		Help:      "Total number of active-spot listing requests, by outcome.",
	},
	[]string{"outcome"},
)
