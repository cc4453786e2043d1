package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipes_api_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipes_api_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Domain Metrics
	RecipesSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipes_submitted_total",
			Help: "Recipes created or re-submitted for moderation",
		},
		[]string{"action"}, // "create", "update"
	)

	ModerationDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipes_moderation_decisions_total",
			Help: "Moderation decisions taken by administrators",
		},
		[]string{"decision"}, // "approve", "reject"
	)

	RatingsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipes_ratings_submitted_total",
			Help: "Ratings written, by operation",
		},
		[]string{"operation"}, // "create", "update", "delete"
	)

	FavoriteChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipes_favorite_changes_total",
			Help: "Favorites added or removed",
		},
		[]string{"action"}, // "add", "remove"
	)
)

func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
