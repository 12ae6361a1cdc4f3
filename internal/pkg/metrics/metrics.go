// Package metrics defines and registers the custom Prometheus metrics of the
// ImageHub web front-end. It is the single source of truth for metric names,
// labels, and help strings. All metrics register with the default registry on
// package init through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "imagehub_web"

// ── Upstream API metrics ──────────────────────────────────────────────────────

// UpstreamRequestsTotal counts calls made to the ImageHub REST API.
// Labels:
//   - action: logical operation (e.g. "login", "list_images", "upload")
//   - outcome: "ok", "unauthorized", "not_found", "error", "unreachable"
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of ImageHub API calls, by action and outcome.",
	},
	[]string{"action", "outcome"},
)

// UpstreamRequestDuration measures ImageHub API round trips.
// Label:
//   - action: logical operation
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of ImageHub API calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"action"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionTransitionsTotal counts session lifecycle events.
// Label:
//   - event: "login", "logout", "forced_logout"
var SessionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_transitions_total",
		Help:      "Total number of session lifecycle transitions.",
	},
	[]string{"event"},
)

// ── Dashboard metrics ─────────────────────────────────────────────────────────

// ValidationRejectionsTotal counts submissions rejected before any network call.
// Label:
//   - form: "signup", "upload", "transform", "user"
var ValidationRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_rejections_total",
		Help:      "Total number of form submissions rejected by local validation.",
	},
	[]string{"form"},
)

// StaleActionsTotal counts action answers discarded because a newer submission
// of the same slot was issued meanwhile.
// Label:
//   - slot: action slot (e.g. "upload", "transform")
var StaleActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stale_actions_total",
		Help:      "Total number of superseded action answers that were discarded.",
	},
	[]string{"slot"},
)
