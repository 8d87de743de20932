// Package observability provides logging, metrics, and tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreOpLatency records persistent store latency by operation and backend.
	StoreOpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "portfolio_store_op_duration_seconds",
		Help:    "Persistent store operation latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"op", "backend"})

	// StoreErrors counts failed store operations by operation and backend.
	StoreErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_store_errors_total",
		Help: "Total number of failed persistent store operations",
	}, []string{"op", "backend"})

	// RedisErrorRate counts Redis errors by command name.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// CatalogFetches counts catalog fetches by outcome.
	CatalogFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_catalog_fetch_total",
		Help: "Total catalog fetches by outcome",
	}, []string{"outcome"})

	// CommentsCreated counts stored comments by kind (comment or reply).
	CommentsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_comments_total",
		Help: "Total comments stored by kind",
	}, []string{"kind"})

	// CommentLikes counts like increments.
	CommentLikes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portfolio_comment_likes_total",
		Help: "Total comment like increments",
	})
)

// TrackStoreOp returns a function that records store latency when called (e.g. defer).
func TrackStoreOp(op, backend string) func() {
	start := time.Now()
	return func() {
		StoreOpLatency.WithLabelValues(op, backend).Observe(time.Since(start).Seconds())
	}
}
