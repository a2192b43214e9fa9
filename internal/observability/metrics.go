package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ripple_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// NotificationFanoutTotal counts notifications produced by the fan-out
	// pipeline, labeled by kind and by whether the record was persisted,
	// suppressed or failed.
	NotificationFanoutTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_notification_fanout_total",
		Help: "Total notifications produced by fan-out, by kind and outcome",
	}, []string{"kind", "outcome"})

	// TrendingQueryDuration records how long the trending hashtag aggregation takes.
	TrendingQueryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ripple_trending_query_duration_seconds",
		Help:    "Duration of the trending hashtag aggregation query",
		Buckets: prometheus.DefBuckets,
	})

	// WebSocketConnectionsTotal is the gauge of active WebSocket connections.
	WebSocketConnectionsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ripple_websocket_connections_total",
		Help: "Total number of active WebSocket connections",
	})

	// OnlineUsers is the gauge of distinct users currently online over WebSocket.
	OnlineUsers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ripple_online_users",
		Help: "Number of distinct users currently online over WebSocket",
	})

	// WebSocketEventsTotal counts WebSocket events by type.
	WebSocketEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_websocket_events_total",
		Help: "Total WebSocket events by type",
	}, []string{"event_type"})

	// WebSocketBackpressureDrops counts messages dropped due to backpressure by hub and reason.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"hub", "reason"})
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

// RecordFanout increments the fan-out counter for the given kind and outcome.
func RecordFanout(kind, outcome string) {
	NotificationFanoutTotal.WithLabelValues(kind, outcome).Inc()
}
