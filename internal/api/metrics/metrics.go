// Package metrics defines and registers all custom Prometheus metrics for the
// FoodShare platform. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "foodshare"

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionOpsTotal counts Session Gate operations.
// Labels:
//   - op: "login", "register" or "logout"
//   - result: "ok", "invalid", "duplicate", "in_flight" or "error"
var SessionOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_ops_total",
		Help:      "Total number of session gate operations, by outcome.",
	},
	[]string{"op", "result"},
)

// SessionOpDuration measures login/register latency including the simulated delay.
// Label:
//   - op: "login" or "register"
var SessionOpDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "session_op_duration_seconds",
		Help:      "Duration of session gate operations.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"op"},
)

// GuardRedirectsTotal counts navigation guard redirects.
// Labels:
//   - route: the requested path
//   - target: the redirect destination
var GuardRedirectsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_redirects_total",
		Help:      "Total number of requests redirected by the navigation guard.",
	},
	[]string{"route", "target"},
)

// ── Donation metrics ──────────────────────────────────────────────────────────

// DonationsPostedTotal counts accepted food posts.
// Label:
//   - category: "cooked", "raw", "packaged", "baked" or "fruits"
var DonationsPostedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "donations_posted_total",
		Help:      "Total number of food donations posted, by category.",
	},
	[]string{"category"},
)

// ClaimsTotal counts listing claims.
// Label:
//   - result: "ok", "in_flight", "not_found" or "error"
var ClaimsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "claims_total",
		Help:      "Total number of food listing claims, by outcome.",
	},
	[]string{"result"},
)

// NotificationsTotal counts delivered (or failed) NGO notifications.
// Label:
//   - result: "sent" or "failed"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of donation notifications handled by the dispatcher.",
	},
	[]string{"result"},
)

// NotificationQueueDepth tracks the pending notifications in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── HTTP metrics ──────────────────────────────────────────────────────────────

// HTTPRequestsTotal counts served requests.
// Labels:
//   - method: HTTP method
//   - route: the matched route pattern (e.g. "/browse-food/:id/claim")
//   - code: the response status code
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests, by method, route and status code.",
	},
	[]string{"method", "route", "code"},
)

// HTTPRequestDuration measures request latency per route.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests, by method and route.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)
