package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "datingmeet_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "datingmeet_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// LikesSubmitted counts accepted like actions by action type.
	LikesSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "datingmeet_likes_submitted_total",
		Help: "Total number of accepted like actions by action type",
	}, []string{"action_type"})

	// MatchesCreated counts matches created by reciprocal likes.
	MatchesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "datingmeet_matches_created_total",
		Help: "Total number of matches created",
	})

	// NotificationsCreated counts notifications written by type.
	NotificationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "datingmeet_notifications_created_total",
		Help: "Total number of notifications created by type",
	}, []string{"type"})

	// RateLimitRejections counts like submissions rejected by the daily limiter.
	RateLimitRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "datingmeet_rate_limit_rejections_total",
		Help: "Total number of like submissions rejected by the daily limiter",
	})
)

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct {
	db *gorm.DB
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(db *gorm.DB) *DatabaseMetrics {
	return &DatabaseMetrics{db: db}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}
